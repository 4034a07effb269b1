package audit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"customer-portal/internal/database"
	"customer-portal/internal/operations"
	"customer-portal/internal/soap"
)

type capturePublisher struct {
	subject string
	payload any
	err     error
}

func (c *capturePublisher) Publish(_ context.Context, subject string, payload any) error {
	c.subject = subject
	c.payload = payload
	return c.err
}

func (c *capturePublisher) Close() {}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestRecorderObserveCall(t *testing.T) {
	t.Run("Writes Row And Publishes", func(t *testing.T) {
		db := newTestDB(t)
		pub := &capturePublisher{}
		rec := NewRecorder(db, pub, "portal.backend.calls", zerolog.Nop())

		rec.ObserveCall(context.Background(), operations.Outcome{
			Operation:  "orders",
			CustomerID: "42",
			Result:     operations.OutcomeTransportFailure,
			HTTPStatus: 502,
			Duration:   1500 * time.Millisecond,
			Err:        &soap.TransportError{Endpoint: "http://backend/x", StatusCode: 502},
			At:         time.Now(),
		})

		rows, err := rec.Recent(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "orders", rows[0].Operation)
		assert.Equal(t, "42", rows[0].CustomerID)
		assert.Equal(t, operations.OutcomeTransportFailure, rows[0].Outcome)
		assert.Equal(t, int64(1500), rows[0].DurationMS)
		assert.Contains(t, rows[0].Error, "returned HTTP 502")

		assert.Equal(t, "portal.backend.calls", pub.subject)
		event, ok := pub.payload.(CallEvent)
		require.True(t, ok)
		assert.Equal(t, rows[0].ID, event.ID)
		assert.Equal(t, operations.OutcomeTransportFailure, event.Outcome)
	})

	t.Run("Cancelled Request Still Recorded", func(t *testing.T) {
		db := newTestDB(t)
		rec := NewRecorder(db, nil, "", zerolog.Nop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rec.ObserveCall(ctx, operations.Outcome{Operation: "payments", Result: operations.OutcomeSuccess, At: time.Now()})

		rows, err := rec.Recent(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("Publish Failure Is Swallowed", func(t *testing.T) {
		pub := &capturePublisher{err: errors.New("nats down")}
		rec := NewRecorder(nil, pub, "s", zerolog.Nop())
		assert.NotPanics(t, func() {
			rec.ObserveCall(context.Background(), operations.Outcome{Operation: "login", At: time.Now()})
		})
		assert.Equal(t, "s", pub.subject)
	})
}
