package portal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"customer-portal/internal/models"
	"customer-portal/internal/normalize"
	"customer-portal/internal/operations"
	"customer-portal/internal/soap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- Tests for GroupOrders ---
func TestGroupOrders(t *testing.T) {
	records := []normalize.Record{
		{"VBELN": "0000012345", "ERDAT": "2024-03-01", "MATNR": "000000000000004711", "ARKTX": "Pipe", "NETWR": "100.50"},
		{"VBELN": "0000012346", "ERDAT": "2024-03-02", "MATNR": "000000000000000042", "ARKTX": "Bolt", "NETWR": "oops"},
		{"VBELN": "0000012345", "ERDAT": "2024-03-05", "MATNR": "000000000000004712", "ARKTX": "Valve", "NETWR": "20"},
	}

	got := GroupOrders(records)
	want := []Order{
		{
			ID: "0000012345", Date: "2024-03-01", Product: "Pipe, Valve", Quantity: "N/A", Status: "N/A",
			Items: []OrderItem{
				{ItemNumber: "4711", Product: "Pipe", Description: "N/A", Quantity: "N/A", UnitPrice: 100.5, Total: 100.5},
				{ItemNumber: "4712", Product: "Valve", Description: "N/A", Quantity: "N/A", UnitPrice: 20, Total: 20},
			},
		},
		{
			ID: "0000012346", Date: "2024-03-02", Product: "Bolt", Quantity: "N/A", Status: "N/A",
			Items: []OrderItem{
				{ItemNumber: "42", Product: "Bolt", Description: "N/A", Quantity: "N/A", UnitPrice: 0, Total: 0},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupOrders mismatch (-want +got):\n%s", diff)
	}

	empty := GroupOrders(nil)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

// --- Tests for GroupDeliveries ---
func TestGroupDeliveries(t *testing.T) {
	records := []normalize.Record{
		{"VBELN_DELIVERY": "8000000001", "LFDAT": "2024-04-01", "VBELN_SO": "12345", "MATNR": "4711", "ARKTX": "Pipe", "LFIMG": "2", "MEINS": "EA", "NETWR": "10", "WAERK": "INR"},
		{"VBELN_DELIVERY": "8000000001", "LFDAT": "2024-04-01", "VBELN_SO": "12345", "MATNR": "4712", "ARKTX": "Valve", "LFIMG": "1", "MEINS": "EA", "NETWR": "5", "WAERK": "INR"},
		{"VBELN_DELIVERY": "8000000002", "LFDAT": "2024-04-03", "VBELN_SO": "12399", "MATNR": "42", "ARKTX": "Bolt"},
	}

	got := GroupDeliveries(records)
	require.Len(t, got, 2)
	assert.Equal(t, "8000000001", got[0].DeliveryNumber)
	assert.Equal(t, "12345", got[0].SalesOrder)
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, DeliveryItem{
		ItemNumber: "8000000001", MaterialNumber: "4712", Description: "Valve",
		Quantity: "1", Unit: "EA", NetValue: "5", Currency: "INR",
	}, got[0].Items[1])
	assert.Equal(t, "", got[1].Items[0].Quantity)
}

// --- Tests for FilterByTerm ---
func TestFilterByTerm(t *testing.T) {
	records := []normalize.Record{
		{"VBELN": "100", "ARKTX": "Steel Pipe", "ERNAM": "JDOE"},
		{"VBELN": "200", "ARKTX": "Valve", "ERNAM": "ASMITH"},
		{"VBELN": "300", "ARKTX": "pipe fitting"},
	}
	fields := RecordFields("VBELN", "ARKTX", "ERNAM")

	t.Run("Empty Term Keeps All", func(t *testing.T) {
		assert.Len(t, FilterByTerm(records, "  ", fields), 3)
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		got := FilterByTerm(records, "PIPE", fields)
		require.Len(t, got, 2)
		assert.Equal(t, "100", got[0]["VBELN"])
		assert.Equal(t, "300", got[1]["VBELN"])
	})

	t.Run("Any Field Matches", func(t *testing.T) {
		got := FilterByTerm(records, "smith", fields)
		require.Len(t, got, 1)
		assert.Equal(t, "200", got[0]["VBELN"])
	})

	t.Run("No Match Is Empty Not Nil", func(t *testing.T) {
		got := FilterByTerm(records, "zzz", fields)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
	})

	t.Run("Non String Values", func(t *testing.T) {
		got := FilterByTerm([]normalize.Record{{"amount": 150.25}}, "150.2", RecordFields("amount"))
		assert.Len(t, got, 1)
	})

	t.Run("Grouped Orders", func(t *testing.T) {
		orders := []Order{{ID: "1", Product: "Pipe, Valve"}, {ID: "2", Product: "Bolt"}}
		got := FilterByTerm(orders, "valve", OrderFields)
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})
}

type fakeRunner struct {
	counts map[string]int
	fail   string
	calls  atomic.Int32
}

func (f *fakeRunner) Execute(ctx context.Context, name string, params map[string]string) (*operations.Result, error) {
	f.calls.Add(1)
	if params["customerId"] != "0000000042" {
		return nil, errors.New("unexpected customer")
	}
	if name == f.fail {
		return nil, &soap.TransportError{Endpoint: name, Timeout: true}
	}
	if f.fail != "" {
		// Wait for the failing call to cancel the group.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	records := make([]normalize.Record, f.counts[name])
	for i := range records {
		records[i] = normalize.Record{}
	}
	return &operations.Result{Operation: name, Data: records}, nil
}

// --- Tests for Summarize ---
func TestSummarize(t *testing.T) {
	t.Run("Counts Each Operation", func(t *testing.T) {
		runner := &fakeRunner{counts: map[string]int{"inquiries": 1, "orders": 5, "deliveries": 0, "invoices": 3}}
		got, err := Summarize(context.Background(), runner, "0000000042")
		require.NoError(t, err)
		assert.Equal(t, models.DashboardSummary{Inquiries: 1, Orders: 5, Deliveries: 0, Invoices: 3}, got)
		assert.Equal(t, int32(4), runner.calls.Load())
	})

	t.Run("First Failure Cancels The Rest", func(t *testing.T) {
		runner := &fakeRunner{fail: "deliveries"}
		start := time.Now()
		_, err := Summarize(context.Background(), runner, "0000000042")
		require.Error(t, err)
		assert.True(t, errors.Is(err, soap.ErrTransport))
		assert.Contains(t, err.Error(), "deliveries")
		assert.Less(t, time.Since(start), time.Second)
	})
}
