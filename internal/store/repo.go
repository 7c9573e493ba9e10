package store

import (
	"context"
	"time"
)

const (
	kvTable       = "kv"
	sessionsTable = "sessions"
)

// KVRepo stores small named documents, one value per key.
type KVRepo interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// SessionRecord is one finished quiz or review session.
type SessionRecord struct {
	ID        string
	Mode      string
	Review    bool
	Score     int
	Total     int
	Grade     int
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the session lasted.
func (r SessionRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// SessionRepo records finished sessions.
type SessionRepo interface {
	// Append stores a finished session.
	Append(ctx context.Context, rec SessionRecord) error

	// Recent returns up to limit sessions, newest first. A limit of 0
	// returns all sessions.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)
}
