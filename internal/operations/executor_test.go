package operations

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-portal/internal/normalize"
	"customer-portal/internal/soap"
)

type fakeCaller struct {
	mu        sync.Mutex
	status    int
	body      string
	err       error
	calls     int
	endpoints []string
	envelopes []string
}

func (f *fakeCaller) Endpoint(service string) string {
	return "http://backend/" + service
}

func (f *fakeCaller) Call(_ context.Context, endpoint, envelope string) (*soap.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.endpoints = append(f.endpoints, endpoint)
	f.envelopes = append(f.envelopes, envelope)
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &soap.Response{StatusCode: status, Body: []byte(f.body)}, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *recordingObserver) ObserveCall(_ context.Context, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func reply(body string) string {
	return `<soap-env:Envelope xmlns:soap-env="http://schemas.xmlsoap.org/soap/envelope/"><soap-env:Body>` +
		body + `</soap-env:Body></soap-env:Envelope>`
}

func newTestExecutor(t *testing.T, caller Caller, observers ...Observer) *Executor {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewExecutor(catalog, caller, zerolog.Nop(), observers...)
}

// --- Tests for Executor.Execute ---
func TestExecute(t *testing.T) {
	t.Run("Orders Are Padded And Passed Through", func(t *testing.T) {
		caller := &fakeCaller{body: reply(`<n0:ZSSM34_P1_SALESResponse xmlns:n0="urn:sap-com:document:sap:rfc:functions">` +
			`<ET_SALES><item><VBELN>0000012345</VBELN><ARKTX>Pipe</ARKTX></item></ET_SALES></n0:ZSSM34_P1_SALESResponse>`)}
		obs := &recordingObserver{}
		exec := newTestExecutor(t, caller, obs)

		res, err := exec.Execute(context.Background(), "orders", map[string]string{"customerId": " 42 "})
		require.NoError(t, err)
		assert.Equal(t, []normalize.Record{{"VBELN": "0000012345", "ARKTX": "Pipe"}}, res.Data)
		assert.Equal(t, 1, res.Count())

		require.Len(t, caller.envelopes, 1)
		assert.Contains(t, caller.envelopes[0], "<IV_KUNNR>0000000042</IV_KUNNR>")
		assert.Contains(t, caller.envelopes[0], "<urn:ZSSM34_P1_SALES>")
		assert.Equal(t, "http://backend/zssm34_p1_sales_ws", caller.endpoints[0])

		require.Len(t, obs.outcomes, 1)
		assert.Equal(t, OutcomeSuccess, obs.outcomes[0].Result)
		assert.Equal(t, "42", obs.outcomes[0].CustomerID)
		assert.Equal(t, http.StatusOK, obs.outcomes[0].HTTPStatus)
	})

	t.Run("Invoice List Is Not Padded", func(t *testing.T) {
		caller := &fakeCaller{body: reply(`<n0:ZSSM34_P1_INVOICE_FRONTResponse xmlns:n0="urn:x"><ET_INVOICE_FRONT/></n0:ZSSM34_P1_INVOICE_FRONTResponse>`)}
		exec := newTestExecutor(t, caller)

		res, err := exec.Execute(context.Background(), "invoices", map[string]string{"customerId": "42"})
		require.NoError(t, err)
		assert.Equal(t, []normalize.Record{}, res.Data)
		assert.Contains(t, caller.envelopes[0], "<IV_KUNNR>42</IV_KUNNR>")
	})

	t.Run("Payments Mapped With Status", func(t *testing.T) {
		caller := &fakeCaller{body: reply(`<n0:ZSSM34_P1_AGINGResponse xmlns:n0="urn:x"><ET_RESULT>` +
			`<item><VBELN>9001</VBELN><FKDAT>2024-01-01</FKDAT><DUE_DT>2024-01-31</DUE_DT><NETWR>100.00</NETWR><AGING>45</AGING></item>` +
			`<item><VBELN>9002</VBELN><NETWR>20.50-</NETWR><WAERK>INR</WAERK><AGING>-5</AGING></item>` +
			`</ET_RESULT></n0:ZSSM34_P1_AGINGResponse>`)}
		exec := newTestExecutor(t, caller)

		res, err := exec.Execute(context.Background(), "payments", map[string]string{"customerId": "42"})
		require.NoError(t, err)
		records := res.Records()
		require.Len(t, records, 2)
		assert.Equal(t, normalize.Record{
			"id": "9001", "documentDate": "2024-01-01", "dueDate": "2024-01-31",
			"amount": 100.0, "currency": "EUR", "aging": "45", "status": "Overdue",
		}, records[0])
		assert.Equal(t, -20.5, records[1]["amount"])
		assert.Equal(t, "INR", records[1]["currency"])
		assert.Equal(t, "Upcoming", records[1]["status"])
		assert.Equal(t, "", records[1]["dueDate"])
	})

	t.Run("Debit Memo Defaults", func(t *testing.T) {
		caller := &fakeCaller{body: reply(`<n0:ZSSM34_P1_DEBITResponse xmlns:n0="urn:x"><ET_INVOICE_FRONT><item><FKDAT>2024-02-02</FKDAT></item></ET_INVOICE_FRONT></n0:ZSSM34_P1_DEBITResponse>`)}
		exec := newTestExecutor(t, caller)

		res, err := exec.Execute(context.Background(), "debit_memos", map[string]string{"customerId": "42"})
		require.NoError(t, err)
		assert.Equal(t, []normalize.Record{{
			"id": "N/A", "date": "2024-02-02", "amount": 0.0, "reference": "N/A",
			"description": "Invoice ", "status": "Pending", "currency": "INR",
		}}, res.Data)
	})

	t.Run("Login Record", func(t *testing.T) {
		caller := &fakeCaller{body: reply(`<n0:ZSSM34_P1_LOGINResponse xmlns:n0="urn:x"><EV_KUNNR>0000000042</EV_KUNNR><EV_MESSAGE>WELCOME USER</EV_MESSAGE></n0:ZSSM34_P1_LOGINResponse>`)}
		exec := newTestExecutor(t, caller)

		res, err := exec.Execute(context.Background(), "login", map[string]string{"userId": "u1", "password": "p&w"})
		require.NoError(t, err)
		assert.Equal(t, normalize.Record{"message": "WELCOME USER", "kunnr": "0000000042"}, res.Data)
		assert.Contains(t, caller.envelopes[0], "<IV_KUNNR>0</IV_KUNNR>")
		assert.Contains(t, caller.envelopes[0], "<IV_PASSWORD>p&amp;w</IV_PASSWORD>")
	})

	t.Run("Missing Required Params Skip The Backend", func(t *testing.T) {
		caller := &fakeCaller{}
		obs := &recordingObserver{}
		exec := newTestExecutor(t, caller, obs)

		_, err := exec.Execute(context.Background(), "invoice_form", map[string]string{"customerId": "  "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, soap.ErrValidation))
		assert.Contains(t, err.Error(), "customerId, salesDocNumber")
		assert.Equal(t, 0, caller.calls)
		require.Len(t, obs.outcomes, 1)
		assert.Equal(t, OutcomeValidationFailure, obs.outcomes[0].Result)
	})

	t.Run("Unknown Operation", func(t *testing.T) {
		exec := newTestExecutor(t, &fakeCaller{})
		_, err := exec.Execute(context.Background(), "nope", nil)
		assert.True(t, errors.Is(err, ErrUnknownOperation))
		assert.True(t, errors.Is(err, soap.ErrValidation))
	})

	t.Run("Transport Failure", func(t *testing.T) {
		caller := &fakeCaller{err: &soap.TransportError{Endpoint: "x", Timeout: true, Err: context.DeadlineExceeded}}
		obs := &recordingObserver{}
		exec := newTestExecutor(t, caller, obs)

		_, err := exec.Execute(context.Background(), "orders", map[string]string{"customerId": "42"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, soap.ErrTransport))
		assert.Equal(t, OutcomeTransportFailure, obs.outcomes[0].Result)
	})

	t.Run("Error Status Without Fault Is Transport Failure", func(t *testing.T) {
		caller := &fakeCaller{status: http.StatusInternalServerError, body: "<html>oops</html>"}
		exec := newTestExecutor(t, caller)

		_, err := exec.Execute(context.Background(), "orders", map[string]string{"customerId": "42"})
		require.Error(t, err)
		var te *soap.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	})

	t.Run("Error Status With Fault Is Structure Mismatch", func(t *testing.T) {
		caller := &fakeCaller{
			status: http.StatusInternalServerError,
			body:   reply(`<soap-env:Fault><faultcode>soap-env:Server</faultcode><faultstring>Function module not found</faultstring></soap-env:Fault>`),
		}
		exec := newTestExecutor(t, caller)

		_, err := exec.Execute(context.Background(), "orders", map[string]string{"customerId": "42"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, soap.ErrStructureMismatch))
		assert.Contains(t, err.Error(), "Function module not found")
	})

	t.Run("Unexpected Reply Shape", func(t *testing.T) {
		caller := &fakeCaller{body: reply(`<n0:SomethingElse xmlns:n0="urn:x"/>`)}
		obs := &recordingObserver{}
		exec := newTestExecutor(t, caller, obs)

		res, err := exec.Execute(context.Background(), "orders", map[string]string{"customerId": "42"})
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, soap.ErrStructureMismatch))
		assert.Equal(t, OutcomeStructureMismatch, obs.outcomes[0].Result)
	})
}

func TestResultAccessors(t *testing.T) {
	list := &Result{Data: []normalize.Record{{"a": "1"}, {"a": "2"}}}
	assert.Equal(t, 2, list.Count())
	assert.Equal(t, normalize.Record{}, list.Record())

	rec := &Result{Data: normalize.Record{"pdf": "JVBER"}}
	assert.Equal(t, 1, rec.Count())
	assert.Equal(t, "JVBER", rec.Record()["pdf"])
}
