// Package session keeps authenticated portal sessions server side.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"customer-portal/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Store persists sessions through gorm.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewStore creates a store issuing sessions that live for ttl.
func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl, now: time.Now}
}

// Create opens a session for userID bound to customerID.
func (s *Store) Create(ctx context.Context, userID, customerID string) (*models.Session, error) {
	now := s.now().UTC()
	sess := &models.Session{
		Token:      uuid.NewString(),
		UserID:     userID,
		CustomerID: customerID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// Lookup resolves a token. Malformed and unknown tokens yield
// ErrSessionNotFound; expired ones ErrSessionExpired.
func (s *Store) Lookup(ctx context.Context, token string) (*models.Session, error) {
	token = strings.TrimSpace(token)
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrSessionNotFound
	}

	var sess models.Session
	err := s.db.WithContext(ctx).First(&sess, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !Authenticated(&sess, s.now()) {
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// Revoke deletes the session. Revoking an unknown token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Sweep deletes expired sessions and returns how many were removed.
func (s *Store) Sweep(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Authenticated reports whether sess is a live session at now.
func Authenticated(sess *models.Session, now time.Time) bool {
	return sess != nil && sess.Token != "" && sess.CustomerID != "" && now.Before(sess.ExpiresAt)
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*models.Session)
	return sess, ok && sess != nil
}
