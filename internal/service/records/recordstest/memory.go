// Package recordstest provides an in-memory records.Store for tests.
package recordstest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/service/records"
)

// Store is an in-memory records.Store. It enforces the same unique columns
// as the SQL schema. Set Err to make every call fail.
type Store struct {
	mu     sync.RWMutex
	tables map[domain.RecordKind][]domain.Record
	unique map[domain.RecordKind]string

	Err error
}

// ErrUnavailable is a convenient outage error for tests.
var ErrUnavailable = errors.New("store unavailable")

// New creates an empty store.
func New() *Store {
	return &Store{
		tables: make(map[domain.RecordKind][]domain.Record),
		unique: map[domain.RecordKind]string{
			domain.KindNewsletter:   "email",
			domain.KindSubscription: "stripe_subscription_id",
		},
	}
}

func (m *Store) Insert(_ context.Context, kind domain.RecordKind, row map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	if !kind.Valid() {
		return records.ErrUnknownKind
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if col, ok := m.unique[kind]; ok && m.indexOf(kind, col, row[col]) >= 0 {
		return records.ErrConflict
	}
	m.tables[kind] = append(m.tables[kind], newRecord(row))
	return nil
}

func (m *Store) Upsert(_ context.Context, kind domain.RecordKind, conflictColumn string, row map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	if !kind.Valid() {
		return records.ErrUnknownKind
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(kind, conflictColumn, row[conflictColumn]); i >= 0 {
		for k, v := range row {
			m.tables[kind][i][k] = v
		}
		return nil
	}
	m.tables[kind] = append(m.tables[kind], newRecord(row))
	return nil
}

func (m *Store) Update(_ context.Context, kind domain.RecordKind, match, patch map[string]any) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if !kind.Valid() {
		return 0, records.ErrUnknownKind
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, rec := range m.tables[kind] {
		if !matches(rec, match) {
			continue
		}
		for k, v := range patch {
			rec[k] = v
		}
		n++
	}
	return n, nil
}

// List returns matching rows newest first.
func (m *Store) List(_ context.Context, kind domain.RecordKind, f records.ListFilter) ([]domain.Record, int, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	if !kind.Valid() {
		return nil, 0, records.ErrUnknownKind
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.tables[kind]
	var out []domain.Record
	for i := len(rows) - 1; i >= 0; i-- {
		rec := rows[i]
		if f.Status != "" && rec["status"] != f.Status {
			continue
		}
		if f.City != "" && rec["city"] != f.City {
			continue
		}
		cp := make(domain.Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		out = append(out, cp)
	}

	total := len(out)
	if f.Offset >= len(out) {
		out = nil
	} else if f.Offset > 0 {
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

// Rows returns a snapshot of kind's rows in insertion order.
func (m *Store) Rows(kind domain.RecordKind) []domain.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Record(nil), m.tables[kind]...)
}

func (m *Store) indexOf(kind domain.RecordKind, col string, val any) int {
	for i, rec := range m.tables[kind] {
		if fmt.Sprint(rec[col]) == fmt.Sprint(val) {
			return i
		}
	}
	return -1
}

func newRecord(row map[string]any) domain.Record {
	rec := make(domain.Record, len(row)+2)
	for k, v := range row {
		rec[k] = v
	}
	if _, ok := rec["id"]; !ok {
		rec["id"] = uuid.NewString()
	}
	rec["created_at"] = time.Now().UTC()
	return rec
}

func matches(rec domain.Record, match map[string]any) bool {
	for k, v := range match {
		if fmt.Sprint(rec[k]) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}
