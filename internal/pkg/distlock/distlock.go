// Package distlock claims keys across API replicas. The payment webhook uses
// it so a redelivered event is applied once.
package distlock

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistLock guards one key. A lock value is single-use and not safe for
// concurrent use; create one per critical section.
type DistLock interface {
	// Acquire tries to take the key without blocking. Returns true on success.
	Acquire(ctx context.Context) (bool, error)
	// Release gives the key up so another caller may take it.
	Release(ctx context.Context) error
	// Keep ends the critical section but leaves the key claimed until its
	// TTL expires. Backends without expiry treat Keep as Release.
	Keep(ctx context.Context) error
}

// NewLock picks Redis when a client is available and falls back to
// PostgreSQL advisory locks. It returns nil when neither is configured.
func NewLock(redisClient *redis.Client, db *sql.DB, key string, ttl time.Duration) DistLock {
	switch {
	case redisClient != nil:
		return NewRedisLock(redisClient, key, ttl)
	case db != nil:
		return NewPGAdvisoryLock(db, key)
	default:
		return nil
	}
}

// PGAdvisoryLock uses pg_try_advisory_lock. Advisory locks belong to a
// database session, so the lock pins one pooled connection from Acquire
// until Release. It only excludes concurrent holders; it cannot remember a
// key after release.
type PGAdvisoryLock struct {
	db     *sql.DB
	lockID int64
	conn   *sql.Conn
}

// NewPGAdvisoryLock derives a stable 64-bit lock ID from key.
func NewPGAdvisoryLock(db *sql.DB, key string) *PGAdvisoryLock {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &PGAdvisoryLock{
		db:     db,
		lockID: int64(h.Sum64()),
	}
}

func (l *PGAdvisoryLock) Acquire(ctx context.Context) (bool, error) {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("advisory lock conn: %w", err)
	}
	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.lockID).Scan(&acquired); err != nil {
		conn.Close()
		return false, fmt.Errorf("advisory lock %d: %w", l.lockID, err)
	}
	if !acquired {
		conn.Close()
		return false, nil
	}
	l.conn = conn
	return true, nil
}

func (l *PGAdvisoryLock) Release(ctx context.Context) error {
	if l.conn == nil {
		return nil
	}
	defer func() {
		l.conn.Close()
		l.conn = nil
	}()
	_, err := l.conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID)
	return err
}

func (l *PGAdvisoryLock) Keep(ctx context.Context) error { return l.Release(ctx) }
