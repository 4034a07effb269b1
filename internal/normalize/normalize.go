// Package normalize turns parsed backend replies into stable JSON records.
package normalize

import (
	"customer-portal/internal/soap"
)

// Record is one normalized item. Keys are fixed by the field mapping, or
// mirror the backend element names when the mapping passes items through.
type Record = map[string]any

// List applies the cardinality rule: an absent or empty node yields an
// empty list, a single node yields a one-element list and a list is returned
// unchanged. The result is never nil.
func List(n *soap.Node) []*soap.Node {
	switch {
	case n.IsEmpty():
		return []*soap.Node{}
	case n.Kind == soap.KindList:
		return n.Items
	default:
		return []*soap.Node{n}
	}
}

// Unwrap descends Envelope, Body and the named response element. A missing
// wrapper or a SOAP fault yields an error wrapping soap.ErrStructureMismatch.
func Unwrap(root *soap.Node, response string) (*soap.Node, error) {
	env := root.Get("Envelope")
	if env == nil {
		return nil, soap.StructureMismatch("missing Envelope")
	}
	body := env.Get("Body")
	if body == nil {
		return nil, soap.StructureMismatch("missing Body")
	}
	if fault := body.Get("Fault"); fault != nil {
		return nil, soap.StructureMismatch("backend fault: %s", FaultString(fault))
	}
	resp := body.Get(response)
	if resp == nil {
		return nil, soap.StructureMismatch("missing %s", response)
	}
	return resp, nil
}

// FindFault returns the fault string of a SOAP fault reply, if root is one.
func FindFault(root *soap.Node) (string, bool) {
	fault := root.Path("Envelope.Body.Fault")
	if fault == nil {
		return "", false
	}
	return FaultString(fault), true
}

// FaultString extracts the human readable text of a SOAP 1.1 or 1.2 fault.
func FaultString(fault *soap.Node) string {
	if s := fault.Get("faultstring").String(); s != "" {
		return s
	}
	if s := fault.Path("Reason.Text").String(); s != "" {
		return s
	}
	return "unknown fault"
}
