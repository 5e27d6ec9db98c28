package records_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/service/records"
	"github.com/pawsnclaws/intake-api/internal/service/records/recordstest"
)

func seed(t *testing.T, store *recordstest.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		row := domain.ContactMessage{Name: "N", Email: "n@example.org", Message: "hello", Reason: "general", City: "austin"}.Row()
		if err := store.Insert(context.Background(), domain.KindContactMessage, row); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}
}

func TestList_PaginatesNewestFirst(t *testing.T) {
	store := recordstest.New()
	seed(t, store, 5)
	svc := records.NewService(store)

	recs, total, err := svc.List(context.Background(), domain.KindContactMessage, records.ListFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	all := store.Rows(domain.KindContactMessage)
	if recs[0]["id"] != all[3]["id"] {
		t.Errorf("expected second-newest record first on page 2")
	}
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc := records.NewService(recordstest.New())
	_, _, err := svc.List(context.Background(), domain.KindContactMessage, records.ListFilter{Status: "bogus"})
	if !errors.Is(err, records.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	store := recordstest.New()
	seed(t, store, 1)
	svc := records.NewService(store)
	ctx := context.Background()
	id := store.Rows(domain.KindContactMessage)[0]["id"].(string)

	if err := svc.UpdateStatus(ctx, domain.KindContactMessage, id, "replied"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got := store.Rows(domain.KindContactMessage)[0]["status"]; got != "replied" {
		t.Errorf("expected status replied, got %v", got)
	}

	if err := svc.UpdateStatus(ctx, domain.KindContactMessage, id, "approved"); !errors.Is(err, records.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, domain.KindContactMessage, "missing", "read"); !errors.Is(err, records.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, domain.RecordKind("admins"), id, "read"); !errors.Is(err, records.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestUpdateStatus_StoreFailureWrapped(t *testing.T) {
	store := recordstest.New()
	store.Err = recordstest.ErrUnavailable
	svc := records.NewService(store)

	err := svc.UpdateStatus(context.Background(), domain.KindLostFound, "6f1c2b1e-3d4a-4e5f-9a8b-7c6d5e4f3a2b", "closed")
	if !errors.Is(err, recordstest.ErrUnavailable) {
		t.Errorf("expected wrapped outage error, got %v", err)
	}
}

func TestUpdateStatus_MalformedIDIsNotFound(t *testing.T) {
	store := recordstest.New()
	store.Err = recordstest.ErrUnavailable
	svc := records.NewService(store)

	err := svc.UpdateStatus(context.Background(), domain.KindLostFound, "abc", "closed")
	if !errors.Is(err, records.ErrNotFound) {
		t.Errorf("expected ErrNotFound before touching the store, got %v", err)
	}
}
