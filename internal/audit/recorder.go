// Package audit records backend calls.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"customer-portal/internal/events"
	"customer-portal/internal/models"
	"customer-portal/internal/operations"
)

// CallEvent is the JSON payload published for every backend call.
type CallEvent struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	CustomerID string    `json:"customerId,omitempty"`
	Outcome    string    `json:"outcome"`
	HTTPStatus int       `json:"httpStatus,omitempty"`
	DurationMS int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// Recorder writes a CallRecord row and publishes a CallEvent per call.
// Either sink may be nil. Failures are logged, never returned to the caller.
type Recorder struct {
	db        *gorm.DB
	publisher events.Publisher
	subject   string
	log       zerolog.Logger
}

// NewRecorder creates a recorder.
func NewRecorder(db *gorm.DB, publisher events.Publisher, subject string, log zerolog.Logger) *Recorder {
	return &Recorder{
		db:        db,
		publisher: publisher,
		subject:   subject,
		log:       log.With().Str("component", "audit").Logger(),
	}
}

// ObserveCall implements operations.Observer.
func (r *Recorder) ObserveCall(ctx context.Context, o operations.Outcome) {
	rec := models.CallRecord{
		ID:         uuid.NewString(),
		Operation:  o.Operation,
		CustomerID: o.CustomerID,
		Outcome:    o.Result,
		HTTPStatus: o.HTTPStatus,
		DurationMS: o.Duration.Milliseconds(),
		CreatedAt:  o.At.UTC(),
	}
	if o.Err != nil {
		rec.Error = o.Err.Error()
	}

	// Recorded even when the client has already gone away.
	ctx = context.WithoutCancel(ctx)

	if r.db != nil {
		if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
			r.log.Error().Err(err).Str("operation", rec.Operation).Msg("failed to write call record")
		}
	}
	if r.publisher != nil && r.subject != "" {
		event := CallEvent{
			ID:         rec.ID,
			Operation:  rec.Operation,
			CustomerID: rec.CustomerID,
			Outcome:    rec.Outcome,
			HTTPStatus: rec.HTTPStatus,
			DurationMS: rec.DurationMS,
			Error:      rec.Error,
			At:         rec.CreatedAt,
		}
		if err := r.publisher.Publish(ctx, r.subject, event); err != nil {
			r.log.Warn().Err(err).Str("operation", rec.Operation).Msg("failed to publish call event")
		}
	}
}

// Recent returns the latest call records, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.CallRecord, error) {
	var records []models.CallRecord
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&records).Error
	return records, err
}
