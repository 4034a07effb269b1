package soap

import (
	"bytes"
	"encoding/xml"
	"regexp"
	"text/template"
)

// DefaultNamespace is the RFC function namespace the backend exposes its
// function modules under.
const DefaultNamespace = "urn:sap-com:document:sap:rfc:functions"

// DefaultEnvelopeTemplate renders a SOAP 1.1 envelope whose body holds a
// single function element with one child per parameter.
const DefaultEnvelopeTemplate = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="{{xml .Namespace}}">
   <soapenv:Header/>
   <soapenv:Body>
      <urn:{{.Function}}>
{{- range .Params}}
         <{{.Name}}>{{xml .Value}}</{{.Name}}>
{{- end}}
      </urn:{{.Function}}>
   </soapenv:Body>
</soapenv:Envelope>`

var (
	xmlNamePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)
	defaultEnvelope = template.Must(ParseEnvelopeTemplate("default", DefaultEnvelopeTemplate))
)

// Param is a single named function parameter. Order is preserved in the
// rendered envelope.
type Param struct {
	Name  string
	Value string
}

// Request is everything needed to render one envelope.
type Request struct {
	Function  string
	Namespace string
	Params    []Param
	// Template overrides DefaultEnvelopeTemplate when set.
	Template *template.Template
}

// ValidName reports whether s can be used as an XML element name.
func ValidName(s string) bool {
	return xmlNamePattern.MatchString(s)
}

// ParseEnvelopeTemplate parses an envelope template. Templates get an "xml"
// function that escapes text content.
func ParseEnvelopeTemplate(name, text string) (*template.Template, error) {
	return template.New(name).Funcs(template.FuncMap{"xml": escapeXML}).Parse(text)
}

// BuildEnvelope renders req into a SOAP envelope. Parameter values are
// escaped; function and parameter names must be valid XML names.
func BuildEnvelope(req Request) (string, error) {
	if req.Function == "" {
		return "", Validation("function name is required")
	}
	if !ValidName(req.Function) {
		return "", Validation("invalid function name %q", req.Function)
	}
	for _, p := range req.Params {
		if !ValidName(p.Name) {
			return "", Validation("invalid parameter name %q", p.Name)
		}
	}
	if req.Namespace == "" {
		req.Namespace = DefaultNamespace
	}
	tmpl := req.Template
	if tmpl == nil {
		tmpl = defaultEnvelope
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", Validation("render envelope for %s: %v", req.Function, err)
	}
	return buf.String(), nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
