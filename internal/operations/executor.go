package operations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"customer-portal/internal/normalize"
	"customer-portal/internal/soap"
)

// Outcome labels recorded for every call.
const (
	OutcomeSuccess           = "success"
	OutcomeTransportFailure  = "transport_failure"
	OutcomeStructureMismatch = "structure_mismatch"
	OutcomeValidationFailure = "validation_failure"
)

// ErrUnknownOperation is returned for names missing from the catalog.
var ErrUnknownOperation = fmt.Errorf("%w: unknown operation", soap.ErrValidation)

// Caller is the transport the executor posts envelopes through.
type Caller interface {
	Endpoint(service string) string
	Call(ctx context.Context, endpoint, envelope string) (*soap.Response, error)
}

// Outcome summarizes one executed operation for observers.
type Outcome struct {
	Operation  string
	CustomerID string
	Result     string
	HTTPStatus int
	Duration   time.Duration
	Err        error
	At         time.Time
}

// Observer is notified after every call. Implementations must not block for
// long; their failures are theirs to log.
type Observer interface {
	ObserveCall(ctx context.Context, o Outcome)
}

// Result is the normalized reply of one operation.
type Result struct {
	Operation string `json:"operation"`
	Data      any    `json:"data"`
}

// Records returns list data as is, and record data as a one-element list.
func (r *Result) Records() []normalize.Record {
	switch v := r.Data.(type) {
	case []normalize.Record:
		return v
	case normalize.Record:
		return []normalize.Record{v}
	default:
		return []normalize.Record{}
	}
}

// Record returns record data, or an empty record for list data.
func (r *Result) Record() normalize.Record {
	if v, ok := r.Data.(normalize.Record); ok {
		return v
	}
	return normalize.Record{}
}

// Count returns the number of records in the result.
func (r *Result) Count() int {
	return len(r.Records())
}

// Executor runs catalog operations against the backend. It holds no
// per-call state and is safe for concurrent use.
type Executor struct {
	catalog   *Catalog
	caller    Caller
	observers []Observer
	log       zerolog.Logger
	now       func() time.Time
}

// NewExecutor creates an executor.
func NewExecutor(catalog *Catalog, caller Caller, log zerolog.Logger, observers ...Observer) *Executor {
	return &Executor{
		catalog:   catalog,
		caller:    caller,
		observers: observers,
		log:       log.With().Str("component", "executor").Logger(),
		now:       time.Now,
	}
}

// Catalog returns the catalog the executor serves.
func (e *Executor) Catalog() *Catalog {
	return e.catalog
}

// Execute validates params, builds the envelope, calls the backend and
// normalizes the reply. Errors wrap soap.ErrValidation, soap.ErrTransport or
// soap.ErrStructureMismatch.
func (e *Executor) Execute(ctx context.Context, name string, params map[string]string) (*Result, error) {
	start := e.now()
	outcome := Outcome{Operation: name, CustomerID: strings.TrimSpace(params["customerId"]), At: start}

	result, status, err := e.execute(ctx, name, params)

	outcome.Duration = e.now().Sub(start)
	outcome.HTTPStatus = status
	outcome.Result = OutcomeOf(err)
	outcome.Err = err
	e.notify(ctx, outcome)

	if err != nil {
		e.log.Warn().Err(err).
			Str("operation", name).
			Str("outcome", outcome.Result).
			Dur("duration", outcome.Duration).
			Msg("backend operation failed")
		return nil, err
	}
	e.log.Debug().
		Str("operation", name).
		Int("records", result.Count()).
		Dur("duration", outcome.Duration).
		Msg("backend operation completed")
	return result, nil
}

func (e *Executor) execute(ctx context.Context, name string, params map[string]string) (*Result, int, error) {
	d, ok := e.catalog.Lookup(name)
	if !ok {
		return nil, 0, fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}

	args, err := resolveParams(d, params)
	if err != nil {
		return nil, 0, err
	}

	envelope, err := soap.BuildEnvelope(soap.Request{
		Function:  d.Function,
		Namespace: d.Namespace,
		Params:    args,
		Template:  d.envelope,
	})
	if err != nil {
		return nil, 0, err
	}

	resp, err := e.caller.Call(ctx, e.caller.Endpoint(d.Service), envelope)
	if err != nil {
		return nil, 0, err
	}

	root, parseErr := soap.Parse(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if parseErr == nil {
			if msg, ok := normalize.FindFault(root); ok {
				return nil, resp.StatusCode, soap.StructureMismatch("backend fault: %s", msg)
			}
		}
		return nil, resp.StatusCode, &soap.TransportError{
			Endpoint:   e.caller.Endpoint(d.Service),
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}
	if parseErr != nil {
		return nil, resp.StatusCode, parseErr
	}

	data, err := normalize.Apply(root, d.Result)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return &Result{Operation: d.Name, Data: data}, resp.StatusCode, nil
}

// resolveParams fills the descriptor's params from the request, trimming and
// padding values. All missing required params are reported together.
func resolveParams(d *Descriptor, params map[string]string) ([]soap.Param, error) {
	args := make([]soap.Param, 0, len(d.Params))
	var missing []string
	for _, p := range d.Params {
		value := p.Value
		if value == "" {
			value = strings.TrimSpace(params[p.From])
			if value == "" && p.Required {
				missing = append(missing, p.From)
				continue
			}
		}
		args = append(args, soap.Param{Name: p.Name, Value: normalize.PadIdentifier(value, p.Pad)})
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, soap.Validation("missing required parameter(s): %s", strings.Join(missing, ", "))
	}
	return args, nil
}

func (e *Executor) notify(ctx context.Context, o Outcome) {
	for _, obs := range e.observers {
		obs.ObserveCall(ctx, o)
	}
}

// OutcomeOf classifies err into an outcome label.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, soap.ErrValidation):
		return OutcomeValidationFailure
	case errors.Is(err, soap.ErrTransport):
		return OutcomeTransportFailure
	default:
		return OutcomeStructureMismatch
	}
}
