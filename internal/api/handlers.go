package api

import (
	"errors"
	"net/http"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/payment"
	"github.com/pawsnclaws/intake-api/internal/pkg/httputil"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
	"github.com/pawsnclaws/intake-api/internal/service/donation"
	"github.com/pawsnclaws/intake-api/internal/service/intake"
	"github.com/pawsnclaws/intake-api/internal/service/newsletter"
	"github.com/pawsnclaws/intake-api/internal/service/records"
	"github.com/pawsnclaws/intake-api/internal/validate"
)

// Services bundles the collaborators the handlers call into.
type Services struct {
	Intake     *intake.Service
	Newsletter *newsletter.Service
	Donations  *donation.Service
	// Records is nil when no database is configured.
	Records  *records.Service
	Webhooks *payment.Verifier
}

// Handlers contains the HTTP handlers for the intake API.
type Handlers struct {
	intake     *intake.Service
	newsletter *newsletter.Service
	donations  *donation.Service
	records    *records.Service
	webhooks   *payment.Verifier
}

// NewHandlers creates a new Handlers instance
func NewHandlers(s Services) *Handlers {
	return &Handlers{
		intake:     s.Intake,
		newsletter: s.Newsletter,
		donations:  s.Donations,
		records:    s.Records,
		webhooks:   s.Webhooks,
	}
}

// submitForm builds the handler for one intake form. Validation failures
// answer 400 with every field message; anything else that goes wrong
// answers 500 with failure.
func submitForm[T domain.Submission](svc *intake.Service, form intake.Form[T], success, failure string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := httputil.DecodeBody(r)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}

		_, _, err = intake.Submit(r.Context(), svc, form, raw)
		var verr *validate.Errors
		switch {
		case errors.As(err, &verr):
			httputil.ValidationFailed(w, verr.Fields())
		case err != nil:
			respondSafeError(w, r, http.StatusInternalServerError, err, failure)
		default:
			httputil.Success(w, success)
		}
	}
}

// firstError answers 400 {error} with the first field message, the shape
// used by the newsletter and donation endpoints.
func firstError(w http.ResponseWriter, err error) bool {
	var verr *validate.Errors
	if !errors.As(err, &verr) {
		return false
	}
	httputil.BadRequest(w, verr.First())
	return true
}

// lostFoundListingLimit is the number of active listings shown publicly.
const lostFoundListingLimit = 50

// ListLostFound returns the newest active lost and found reports. Store
// failures yield an empty list.
//
//	GET /api/lost-found
func (h *Handlers) ListLostFound(w http.ResponseWriter, r *http.Request) {
	listings := []domain.Record{}
	if h.records != nil {
		rows, _, err := h.records.List(r.Context(), domain.KindLostFound, records.ListFilter{
			Status: "active",
			City:   r.URL.Query().Get("city"),
			Limit:  lostFoundListingLimit,
		})
		if err != nil {
			logger.Warn("api: lost-found listing failed", "error", err)
		} else if rows != nil {
			listings = rows
		}
	}
	httputil.OK(w, map[string]any{"listings": listings})
}
