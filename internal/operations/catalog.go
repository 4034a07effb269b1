// Package operations holds the catalog of backend operations and the
// executor that runs them.
package operations

import (
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"

	"customer-portal/internal/normalize"
	"customer-portal/internal/soap"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Param describes how one envelope parameter is filled. Either Value is a
// constant or From names the request key the value comes from.
type Param struct {
	Name     string `yaml:"name" json:"name"`
	From     string `yaml:"from" json:"from,omitempty"`
	Value    string `yaml:"value" json:"value,omitempty"`
	Pad      int    `yaml:"pad" json:"pad,omitempty"`
	Required bool   `yaml:"required" json:"required,omitempty"`
}

// Descriptor is one backend operation.
type Descriptor struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description,omitempty"`
	Service     string            `yaml:"service" json:"service"`
	Function    string            `yaml:"function" json:"function"`
	Namespace   string            `yaml:"namespace" json:"namespace,omitempty"`
	Envelope    string            `yaml:"envelope" json:"-"`
	Params      []Param           `yaml:"params" json:"params"`
	Result      normalize.Mapping `yaml:"result" json:"result"`

	envelope *template.Template
}

type catalogFile struct {
	Defaults struct {
		Namespace string `yaml:"namespace"`
	} `yaml:"defaults"`
	Operations []*Descriptor `yaml:"operations"`
}

// Catalog is an immutable set of operation descriptors.
type Catalog struct {
	ops   map[string]*Descriptor
	order []string
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalog)
}

// LoadCatalogFile reads a catalog from path, or the built-in catalog when
// path is empty.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read operations file: %w", err)
	}
	return LoadCatalog(data)
}

// LoadCatalog parses and validates a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse operations catalog: %w", err)
	}
	if len(file.Operations) == 0 {
		return nil, fmt.Errorf("operations catalog is empty")
	}

	c := &Catalog{ops: make(map[string]*Descriptor, len(file.Operations))}
	for i, d := range file.Operations {
		if d.Namespace == "" {
			d.Namespace = file.Defaults.Namespace
		}
		if err := d.prepare(); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, d.Name, err)
		}
		if _, dup := c.ops[d.Name]; dup {
			return nil, fmt.Errorf("operation %q defined twice", d.Name)
		}
		c.ops[d.Name] = d
		c.order = append(c.order, d.Name)
	}
	return c, nil
}

func (d *Descriptor) prepare() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Service == "" {
		return fmt.Errorf("service is required")
	}
	if !soap.ValidName(d.Function) {
		return fmt.Errorf("invalid function name %q", d.Function)
	}
	for _, p := range d.Params {
		if !soap.ValidName(p.Name) {
			return fmt.Errorf("invalid parameter name %q", p.Name)
		}
		if p.From == "" && p.Value == "" {
			return fmt.Errorf("parameter %s needs either from or value", p.Name)
		}
		if p.Pad < 0 {
			return fmt.Errorf("parameter %s: negative pad width", p.Name)
		}
	}
	if d.Result.Response == "" {
		d.Result.Response = d.Function + "Response"
	}
	if d.Result.Shape == "" {
		d.Result.Shape = normalize.ShapeList
	}
	if err := d.Result.Validate(); err != nil {
		return fmt.Errorf("result: %w", err)
	}
	if d.Envelope != "" {
		tmpl, err := soap.ParseEnvelopeTemplate(d.Name, d.Envelope)
		if err != nil {
			return fmt.Errorf("envelope template: %w", err)
		}
		d.envelope = tmpl
	}
	return nil
}

// Lookup returns the descriptor registered under name.
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	d, ok := c.ops[name]
	return d, ok
}

// Names returns operation names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}
