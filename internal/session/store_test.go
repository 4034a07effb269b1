package session

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
	"customer-portal/internal/models"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewStore(db, ttl)
}

// --- Tests for Store ---
func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And Lookup", func(t *testing.T) {
		store := newTestStore(t, time.Hour)
		sess, err := store.Create(ctx, "user1", "0000000042")
		require.NoError(t, err)
		assert.Len(t, sess.Token, 36)
		assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

		got, err := store.Lookup(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, "user1", got.UserID)
		assert.Equal(t, "0000000042", got.CustomerID)
	})

	t.Run("Unknown And Malformed Tokens", func(t *testing.T) {
		store := newTestStore(t, time.Hour)
		_, err := store.Lookup(ctx, "not-a-token")
		assert.True(t, errors.Is(err, ErrSessionNotFound))

		_, err = store.Lookup(ctx, "6f1c1e4a-2f4e-4d0e-9a55-0b1f5f7b9c11")
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	})

	t.Run("Expired Session", func(t *testing.T) {
		store := newTestStore(t, time.Minute)
		sess, err := store.Create(ctx, "user1", "42")
		require.NoError(t, err)

		store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		_, err = store.Lookup(ctx, sess.Token)
		assert.True(t, errors.Is(err, ErrSessionExpired))
	})

	t.Run("Revoke", func(t *testing.T) {
		store := newTestStore(t, time.Hour)
		sess, err := store.Create(ctx, "user1", "42")
		require.NoError(t, err)

		require.NoError(t, store.Revoke(ctx, sess.Token))
		_, err = store.Lookup(ctx, sess.Token)
		assert.True(t, errors.Is(err, ErrSessionNotFound))

		assert.NoError(t, store.Revoke(ctx, sess.Token))
	})

	t.Run("Sweep Removes Only Expired", func(t *testing.T) {
		store := newTestStore(t, time.Minute)
		old, err := store.Create(ctx, "old", "1")
		require.NoError(t, err)

		store.ttl = time.Hour
		fresh, err := store.Create(ctx, "fresh", "2")
		require.NoError(t, err)

		store.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
		n, err := store.Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = store.Lookup(ctx, old.Token)
		assert.True(t, errors.Is(err, ErrSessionNotFound))
		_, err = store.Lookup(ctx, fresh.Token)
		assert.NoError(t, err)
	})
}

func TestAuthenticated(t *testing.T) {
	now := time.Now()
	live := &models.Session{Token: "t", CustomerID: "42", ExpiresAt: now.Add(time.Minute)}

	assert.True(t, Authenticated(live, now))
	assert.False(t, Authenticated(nil, now))
	assert.False(t, Authenticated(&models.Session{CustomerID: "42", ExpiresAt: now.Add(time.Minute)}, now))
	assert.False(t, Authenticated(&models.Session{Token: "t", ExpiresAt: now.Add(time.Minute)}, now))
	assert.False(t, Authenticated(live, now.Add(time.Minute)))
}

func TestSessionContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	sess := &models.Session{Token: "t"}
	got, ok := FromContext(WithSession(context.Background(), sess))
	require.True(t, ok)
	assert.Same(t, sess, got)
}

// --- Tests for Sweeper ---
func TestSweeper(t *testing.T) {
	t.Run("Invalid Schedule", func(t *testing.T) {
		store := newTestStore(t, time.Hour)
		sweeper := NewSweeper(store, "not a schedule", zerolog.Nop())
		err := sweeper.Start()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid session sweep schedule")
	})

	t.Run("Registers One Job", func(t *testing.T) {
		store := newTestStore(t, time.Hour)
		sweeper := NewSweeper(store, "@every 1h", zerolog.Nop())
		require.NoError(t, sweeper.Start())
		assert.Len(t, sweeper.cronRunner.Entries(), 1)
		sweeper.Stop()
	})

	t.Run("RunOnce Sweeps", func(t *testing.T) {
		store := newTestStore(t, time.Minute)
		sess, err := store.Create(context.Background(), "u", "1")
		require.NoError(t, err)
		store.now = func() time.Time { return time.Now().Add(time.Hour) }

		NewSweeper(store, "@every 1h", zerolog.Nop()).RunOnce()

		store.now = time.Now
		_, err = store.Lookup(context.Background(), sess.Token)
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	})
}
