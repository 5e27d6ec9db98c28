package api

import (
	"errors"
	"net/http"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/pkg/httputil"
	"github.com/pawsnclaws/intake-api/internal/service/newsletter"
	"github.com/pawsnclaws/intake-api/internal/service/records"
)

const unsubscribedMessage = "You've been unsubscribed from our newsletter."

// Subscribe adds an address to the newsletter.
//
//	POST /api/newsletter
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	raw, err := httputil.DecodeBody(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	status, err := h.newsletter.Subscribe(r.Context(), raw)
	if err != nil {
		if !firstError(w, err) {
			respondSafeError(w, r, http.StatusInternalServerError, err, "Failed to subscribe. Please try again.")
		}
		return
	}

	if status == newsletter.AlreadySubscribed {
		httputil.Message(w, http.StatusOK, "You're already subscribed!")
		return
	}
	httputil.Created(w, httputil.MessageResponse{Message: "Successfully subscribed to newsletter!"})
}

// Unsubscribe answers the same message whether or not the address was on
// the list.
//
//	POST /api/newsletter/unsubscribe
func (h *Handlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	raw, err := httputil.DecodeBody(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	if err := h.newsletter.Unsubscribe(r.Context(), raw); err != nil {
		if !firstError(w, err) {
			respondSafeError(w, r, http.StatusInternalServerError, err, "Failed to unsubscribe. Please try again.")
		}
		return
	}
	httputil.Message(w, http.StatusOK, unsubscribedMessage)
}

// ListSubscribers returns subscribers newest first. Requires an admin session.
//
//	GET /api/newsletter?status=active&page=1&limit=100
func (h *Handlers) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r, 100, 1000)
	subs, total, err := h.newsletter.List(r.Context(), params.Filter())
	switch {
	case errors.Is(err, records.ErrInvalidStatus):
		httputil.BadRequest(w, "Invalid status")
		return
	case err != nil:
		respondSafeError(w, r, http.StatusInternalServerError, err, "Failed to fetch subscribers")
		return
	}
	if subs == nil {
		subs = []domain.Record{}
	}
	httputil.OK(w, map[string]any{"count": total, "subscribers": subs})
}
