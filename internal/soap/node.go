package soap

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	KindText Kind = iota
	KindObject
	KindList
)

// Node is the loosely-typed tree parsed from a backend XML response.
//
// An element without child elements becomes a text node. An element with
// children becomes an object keyed by local name (namespace prefixes are
// dropped). A child name that repeats becomes a list under that key, so a
// collection with one member is an object and a collection with several is a
// list. An absent element is a nil *Node; every accessor is nil-safe.
type Node struct {
	Kind  Kind
	Text  string
	Items []*Node

	fields map[string]*Node
	keys   []string
}

// TextNode returns a text node.
func TextNode(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// ObjectNode returns an empty object node.
func ObjectNode() *Node {
	return &Node{Kind: KindObject, fields: make(map[string]*Node)}
}

// ListNode returns a list node holding items in order.
func ListNode(items ...*Node) *Node {
	return &Node{Kind: KindList, Items: items}
}

// Set stores child under key, replacing any previous value. It is a no-op on
// non-object nodes.
func (n *Node) Set(key string, child *Node) *Node {
	if n == nil || n.Kind != KindObject {
		return n
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = child
	return n
}

// add stores child under key, turning a repeated key into a list.
func (n *Node) add(key string, child *Node) {
	existing, ok := n.fields[key]
	switch {
	case !ok:
		n.Set(key, child)
	case existing.Kind == KindList:
		existing.Items = append(existing.Items, child)
	default:
		n.fields[key] = ListNode(existing, child)
	}
}

// Get returns the child stored under key, or nil.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	return n.fields[key]
}

// Path follows a dotted path of keys, e.g. "ET_SALES.item".
func (n *Node) Path(path string) *Node {
	if path == "" {
		return n
	}
	cur := n
	for _, key := range strings.Split(path, ".") {
		cur = cur.Get(key)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Keys returns object keys in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// String returns the text of a text node and "" for anything else.
func (n *Node) String() string {
	if n == nil || n.Kind != KindText {
		return ""
	}
	return n.Text
}

// IsEmpty reports whether n is absent or an empty text node.
func (n *Node) IsEmpty() bool {
	return n == nil || (n.Kind == KindText && n.Text == "")
}

// Value converts n into plain Go values: string, map[string]any or []any.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindObject:
		m := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			m[k] = n.fields[k].Value()
		}
		return m
	case KindList:
		out := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			out = append(out, item.Value())
		}
		return out
	default:
		return n.Text
	}
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value())
}

// FromValue builds a Node from plain Go values, the inverse of Value.
// Numbers and booleans become text; map keys are sorted.
func FromValue(v any) *Node {
	switch t := v.(type) {
	case nil:
		return nil
	case *Node:
		return t
	case string:
		return TextNode(t)
	case float64:
		return TextNode(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return TextNode(strconv.Itoa(t))
	case int64:
		return TextNode(strconv.FormatInt(t, 10))
	case bool:
		return TextNode(strconv.FormatBool(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := ObjectNode()
		for _, k := range keys {
			obj.Set(k, FromValue(t[k]))
		}
		return obj
	case []map[string]any:
		items := make([]*Node, 0, len(t))
		for _, item := range t {
			items = append(items, FromValue(item))
		}
		return ListNode(items...)
	case []any:
		items := make([]*Node, 0, len(t))
		for _, item := range t {
			items = append(items, FromValue(item))
		}
		return ListNode(items...)
	default:
		b, _ := json.Marshal(t)
		return TextNode(string(b))
	}
}

type parseFrame struct {
	name string
	obj  *Node
	text strings.Builder
}

// Parse decodes an XML document into a Node tree. The returned root is an
// object holding the document element under its local name, so a SOAP reply
// is reached through root.Get("Envelope"). Text is trimmed, attributes and
// mixed content inside elements that have children are discarded. Malformed
// input yields an error wrapping ErrStructureMismatch.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := ObjectNode()
	var stack []*parseFrame

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, StructureMismatch("malformed XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, &parseFrame{name: t.Name.Local})
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := f.obj
			if node == nil {
				node = TextNode(strings.TrimSpace(f.text.String()))
			}
			if len(stack) == 0 {
				root.add(f.name, node)
				continue
			}
			parent := stack[len(stack)-1]
			if parent.obj == nil {
				parent.obj = ObjectNode()
			}
			parent.obj.add(f.name, node)
		}
	}
	if len(stack) > 0 {
		return nil, StructureMismatch("unexpected end of document inside <%s>", stack[len(stack)-1].name)
	}
	if len(root.keys) == 0 {
		return nil, StructureMismatch("empty document")
	}
	return root, nil
}
