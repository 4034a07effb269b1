package soap

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the three failure classes a backend call can end in.
// Callers classify with errors.Is.
var (
	ErrTransport         = errors.New("transport failure")
	ErrStructureMismatch = errors.New("structure mismatch")
	ErrValidation        = errors.New("validation failure")
)

// TransportError describes a backend call that could not complete: the
// connection failed, the call timed out, or the backend answered with a
// non-2xx status and no SOAP fault.
type TransportError struct {
	Endpoint   string
	StatusCode int  // set when the backend answered with a non-2xx status
	Timeout    bool // deadline exceeded or network timeout
	Refused    bool // connection refused
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("backend call to ")
	b.WriteString(e.Endpoint)
	switch {
	case e.Timeout:
		b.WriteString(" timed out")
	case e.Refused:
		b.WriteString(" was refused")
	case e.StatusCode != 0:
		fmt.Fprintf(&b, " returned HTTP %d", e.StatusCode)
	default:
		b.WriteString(" failed")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both ErrTransport and the underlying cause.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// StructureMismatch returns an error wrapping ErrStructureMismatch.
func StructureMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructureMismatch, fmt.Sprintf(format, args...))
}

// Validation returns an error wrapping ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
