package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisLock_ExcludesSecondHolder(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)

	first := NewRedisLock(client, "evt_1", time.Minute)
	second := NewRedisLock(client, "evt_1", time.Minute)

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// A non-owner cannot free the key.
	require.NoError(t, second.Release(ctx))
	ok, err = NewRedisLock(client, "evt_1", time.Minute).Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, first.Release(ctx))
	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLock_KeepHoldsUntilTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)

	lock := NewRedisLock(client, "evt_2", time.Hour)
	ok, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, lock.Keep(ctx))

	ok, err = NewRedisLock(client, "evt_2", time.Hour).Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Hour)
	ok, err = NewRedisLock(client, "evt_2", time.Hour).Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPGAdvisoryLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lock := NewPGAdvisoryLock(db, "evt_3")

	mock.ExpectQuery(`SELECT pg_try_advisory_lock\(\$1\)`).
		WithArgs(lock.lockID).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectExec(`SELECT pg_advisory_unlock\(\$1\)`).
		WithArgs(lock.lockID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, lock.Keep(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLock_Backends(t *testing.T) {
	_, client := newRedis(t)
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.IsType(t, &RedisLock{}, NewLock(client, db, "k", time.Minute))
	assert.IsType(t, &PGAdvisoryLock{}, NewLock(nil, db, "k", time.Minute))
	assert.Nil(t, NewLock(nil, nil, "k", time.Minute))
}
