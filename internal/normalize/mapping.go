package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"customer-portal/internal/soap"
)

// Type selects how a source value is coerced.
type Type string

const (
	TypeString     Type = "string"
	TypeNumber     Type = "number"
	TypeInteger    Type = "integer"
	TypeTrim       Type = "trim"
	TypeLowercase  Type = "lowercase"
	TypeStripZeros Type = "strip_zeros"
	TypeList       Type = "list"
)

// Shape selects whether a mapping yields a list of records or one record.
type Shape string

const (
	ShapeList   Shape = "list"
	ShapeRecord Shape = "record"
)

// Field maps one source element to one output key.
type Field struct {
	Source  string `yaml:"source" json:"source,omitempty"`
	Target  string `yaml:"target" json:"target"`
	Type    Type   `yaml:"type" json:"type,omitempty"`
	Default any    `yaml:"default" json:"default,omitempty"`
	Format  string `yaml:"format" json:"format,omitempty"`
	Derive  string `yaml:"derive" json:"derive,omitempty"`
}

// Mapping describes how a reply is turned into records.
type Mapping struct {
	Response string  `yaml:"response" json:"response"`
	Shape    Shape   `yaml:"shape" json:"shape"`
	Items    string  `yaml:"items" json:"items,omitempty"`
	Fields   []Field `yaml:"fields" json:"fields,omitempty"`
}

// Validate checks that the mapping can be applied.
func (m Mapping) Validate() error {
	if m.Response == "" {
		return fmt.Errorf("response element is required")
	}
	switch m.Shape {
	case ShapeList:
		if m.Items == "" {
			return fmt.Errorf("list shape requires an items path")
		}
	case ShapeRecord:
	default:
		return fmt.Errorf("unknown shape %q", m.Shape)
	}

	seen := make(map[string]bool, len(m.Fields))
	for i, f := range m.Fields {
		if f.Target == "" {
			return fmt.Errorf("field %d: target is required", i)
		}
		if seen[f.Target] {
			return fmt.Errorf("field %q: duplicate target", f.Target)
		}
		seen[f.Target] = true

		switch f.Type {
		case "", TypeString, TypeNumber, TypeInteger, TypeTrim, TypeLowercase, TypeStripZeros, TypeList:
		default:
			return fmt.Errorf("field %q: unknown type %q", f.Target, f.Type)
		}
		if f.Derive != "" {
			if _, ok := derivations[f.Derive]; !ok {
				return fmt.Errorf("field %q: unknown derivation %q", f.Target, f.Derive)
			}
			if f.Source == "" {
				return fmt.Errorf("field %q: derivation needs a source", f.Target)
			}
		}
	}
	return nil
}

// Apply unwraps root and maps it. List shapes return []Record, never nil;
// record shapes return a single Record. Nothing partial is returned on error.
func Apply(root *soap.Node, m Mapping) (any, error) {
	resp, err := Unwrap(root, m.Response)
	if err != nil {
		return nil, err
	}
	if m.Shape == ShapeRecord {
		return MapItem(resp, m.Fields), nil
	}

	items := List(resp.Path(m.Items))
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, MapItem(item, m.Fields))
	}
	return out, nil
}

// MapItem maps a single item. With no fields the item's subtree is passed
// through as plain values; a bare text item becomes {"value": text}.
func MapItem(item *soap.Node, fields []Field) Record {
	if len(fields) == 0 {
		switch v := item.Value().(type) {
		case map[string]any:
			return v
		case nil:
			return Record{}
		default:
			return Record{"value": v}
		}
	}

	rec := make(Record, len(fields))
	for _, f := range fields {
		var value any
		if f.Source == "" {
			value = defaultFor(f)
		} else {
			value = resolve(item.Path(f.Source), f)
		}
		if f.Format != "" {
			value = strings.ReplaceAll(f.Format, "{value}", fmt.Sprint(value))
		}
		rec[f.Target] = value
	}
	return rec
}

func resolve(raw *soap.Node, f Field) any {
	if f.Derive != "" {
		return derivations[f.Derive](raw.String())
	}
	if f.Type == TypeList {
		items := List(raw)
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, item.Value())
		}
		return out
	}

	text := raw.String()
	if text == "" {
		return defaultFor(f)
	}
	switch f.Type {
	case TypeNumber:
		n, err := ParseAmount(text)
		if err != nil {
			return defaultFor(f)
		}
		return n
	case TypeInteger:
		n, err := parseInteger(text)
		if err != nil {
			return defaultFor(f)
		}
		return n
	case TypeTrim:
		return strings.TrimSpace(text)
	case TypeLowercase:
		return strings.ToLower(text)
	case TypeStripZeros:
		return StripZeros(text)
	default:
		return text
	}
}

func defaultFor(f Field) any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Type {
	case TypeNumber:
		return float64(0)
	case TypeInteger:
		return 0
	case TypeList:
		return []any{}
	default:
		return ""
	}
}

// ParseAmount parses a backend amount. A trailing minus sign, as the backend
// writes credit amounts, makes the value negative.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasSuffix(s, "-")
	if negative {
		s = strings.TrimSpace(strings.TrimSuffix(s, "-"))
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if negative {
		n = -n
	}
	return n, nil
}

func parseInteger(s string) (int, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasSuffix(s, "-")
	if negative {
		s = strings.TrimSpace(strings.TrimSuffix(s, "-"))
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if negative {
		n = -n
	}
	return n, nil
}

// StripZeros removes leading zeros. An all-zero value collapses to "0".
func StripZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}
