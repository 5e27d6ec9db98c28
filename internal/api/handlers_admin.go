package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawsnclaws/intake-api/internal/auth"
	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/pkg/httputil"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
	"github.com/pawsnclaws/intake-api/internal/service/records"
)

// ListRecords returns a page of stored submissions of one kind.
//
//	GET /api/admin/{kind}?status=pending&city=austin&page=1&limit=50
func (h *Handlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseRecordKind(chi.URLParam(r, "kind"))
	if !ok {
		httputil.NotFound(w, "Unknown record type")
		return
	}
	if h.records == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	params := ParseListParams(r, 50, 200)
	rows, total, err := h.records.List(r.Context(), kind, params.Filter())
	if err != nil {
		h.recordError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.Record{}
	}
	httputil.OK(w, NewListResponse(rows, params, total))
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateRecordStatus moves a record to another workflow state.
//
//	PATCH /api/admin/{kind}/{id}/status  {"status":"approved"}
func (h *Handlers) UpdateRecordStatus(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseRecordKind(chi.URLParam(r, "kind"))
	if !ok {
		httputil.NotFound(w, "Unknown record type")
		return
	}
	if h.records == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	var req statusUpdateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.records.UpdateStatus(r.Context(), kind, id, req.Status); err != nil {
		h.recordError(w, r, err)
		return
	}

	admin := "unknown"
	if s, ok := auth.SessionFrom(r.Context()); ok {
		admin = s.Email
	}
	logger.Info("api: record status changed", "kind", kind, "id", id, "status", req.Status, "admin_email", admin)
	httputil.OK(w, map[string]any{"success": true, "id": id, "status": req.Status})
}

func (h *Handlers) recordError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, records.ErrUnknownKind):
		httputil.NotFound(w, "Unknown record type")
	case errors.Is(err, records.ErrInvalidStatus):
		httputil.BadRequest(w, "Invalid status")
	case errors.Is(err, records.ErrNotFound):
		httputil.NotFound(w, "Record not found")
	default:
		respondSafeError(w, r, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
	}
}
