package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/service/records"
)

func newMock(t *testing.T) (*RecordStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRecordStore(db), mock
}

func TestInsert_SortedQuotedColumns(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "newsletter_subscribers" ("email", "id", "status") VALUES ($1, $2, $3)`)).
		WithArgs("a@b.com", "sub-1", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Insert(context.Background(), domain.KindNewsletter,
		map[string]any{"status": "active", "email": "a@b.com", "id": "sub-1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UniqueViolationIsConflict(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO "newsletter_subscribers"`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	err := store.Insert(context.Background(), domain.KindNewsletter, map[string]any{"email": "a@b.com"})
	assert.ErrorIs(t, err, records.ErrConflict)
}

func TestInsert_OtherErrorsWrapped(t *testing.T) {
	store, mock := newMock(t)
	boom := errors.New("connection refused")

	mock.ExpectExec(`INSERT INTO "colony_submissions"`).WillReturnError(boom)

	err := store.Insert(context.Background(), domain.KindColony, map[string]any{"status": "pending"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, records.ErrConflict)
}

func TestInsert_EncodesArraysAndJSON(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "volunteers" ("id", "notes", "skills") VALUES ($1, $2, $3)`)).
		WithArgs("v-1", `{"hasVehicle":true}`, pq.Array([]string{"events", "transport"})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Insert(context.Background(), domain.KindVolunteer, map[string]any{
		"id":     "v-1",
		"skills": []string{"events", "transport"},
		"notes":  map[string]any{"hasVehicle": true},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UnknownKind(t *testing.T) {
	store, _ := newMock(t)
	err := store.Insert(context.Background(), domain.RecordKind("pg_catalog"), map[string]any{"x": 1})
	assert.ErrorIs(t, err, records.ErrUnknownKind)
}

func TestUpdate_ReturnsAffectedRows(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE "newsletter_subscribers" SET "status" = $1 WHERE "email" = $2`)).
		WithArgs("unsubscribed", "a@b.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := store.Update(context.Background(), domain.KindNewsletter,
		map[string]any{"email": "a@b.com"}, map[string]any{"status": "unsubscribed"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpdate_RefusesEmptyMatch(t *testing.T) {
	store, _ := newMock(t)
	_, err := store.Update(context.Background(), domain.KindNewsletter, nil, map[string]any{"status": "x"})
	assert.Error(t, err)
}

func TestUpsert_OnConflictUpdatesOtherColumns(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "subscriptions" ("amount", "id", "status", "stripe_subscription_id") VALUES ($1, $2, $3, $4) ` +
			`ON CONFLICT ("stripe_subscription_id") DO UPDATE SET "amount" = EXCLUDED."amount", "status" = EXCLUDED."status"`)).
		WithArgs(int64(1500), "s-1", "active", "sub_123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Upsert(context.Background(), domain.KindSubscription, "stripe_subscription_id", map[string]any{
		"id": "s-1", "stripe_subscription_id": "sub_123", "amount": int64(1500), "status": "active",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_FiltersAndDecodes(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "lost_found" WHERE status = $1`)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT to_jsonb(t) FROM "lost_found" t WHERE status = $1 ORDER BY t.created_at DESC LIMIT $2 OFFSET $3`)).
		WithArgs("active", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"to_jsonb"}).
			AddRow([]byte(`{"id":"lf-1","species":"cat","status":"active"}`)))

	recs, total, err := store.List(context.Background(), domain.KindLostFound, records.ListFilter{Status: "active", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, recs, 1)
	assert.Equal(t, "cat", recs[0]["species"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
