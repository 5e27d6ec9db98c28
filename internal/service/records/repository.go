package records

import (
	"context"

	"github.com/pawsnclaws/intake-api/internal/domain"
)

// Store defines the data access contract for submission tables.
type Store interface {
	// Insert writes one row. Unique violations return ErrConflict.
	Insert(ctx context.Context, kind domain.RecordKind, row map[string]any) error

	// Upsert inserts row or, when conflictColumn already holds the same
	// value, overwrites the other columns.
	Upsert(ctx context.Context, kind domain.RecordKind, conflictColumn string, row map[string]any) error

	// Update applies patch to every row whose columns equal match and
	// returns the number of rows changed.
	Update(ctx context.Context, kind domain.RecordKind, match, patch map[string]any) (int64, error)

	// List returns rows matching the filter, newest first, and the total
	// number of matching rows.
	List(ctx context.Context, kind domain.RecordKind, filter ListFilter) ([]domain.Record, int, error)
}

// ListFilter controls pagination and filtering for record listings.
type ListFilter struct {
	Status string
	City   string
	Limit  int
	Offset int
}
