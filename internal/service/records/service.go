package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pawsnclaws/intake-api/internal/domain"
)

// Service implements the admin operations on stored submissions. It is safe
// for concurrent use.
type Service struct {
	store Store
}

// NewService creates a records service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns a page of kind's records.
func (s *Service) List(ctx context.Context, kind domain.RecordKind, filter ListFilter) ([]domain.Record, int, error) {
	if !kind.Valid() {
		return nil, 0, ErrUnknownKind
	}
	if filter.Status != "" && !kind.AllowsStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.store.List(ctx, kind, filter)
}

// UpdateStatus moves one record to a new workflow state.
func (s *Service) UpdateStatus(ctx context.Context, kind domain.RecordKind, id, status string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if !kind.AllowsStatus(status) {
		return ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	n, err := s.store.Update(ctx, kind, map[string]any{"id": id}, map[string]any{"status": status})
	if err != nil {
		return fmt.Errorf("update %s status: %w", kind, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
