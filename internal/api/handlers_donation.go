package api

import (
	"net/http"

	"github.com/pawsnclaws/intake-api/internal/payment"
	"github.com/pawsnclaws/intake-api/internal/pkg/httputil"
)

// CreateCheckout validates a donation and returns the hosted checkout URL.
//
//	POST /api/donations/create-checkout
func (h *Handlers) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	raw, err := httputil.DecodeBody(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	url, err := h.donations.Checkout(r.Context(), raw)
	if err != nil {
		if !firstError(w, err) {
			respondSafeError(w, r, http.StatusInternalServerError, err, "Failed to create checkout session")
		}
		return
	}
	httputil.OK(w, map[string]string{"url": url})
}

// StripeWebhook verifies and applies a payment processor event. Handler
// failures answer 500 so the processor redelivers.
//
//	POST /api/webhooks/stripe
func (h *Handlers) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	if !h.webhooks.Configured() {
		respondSafeError(w, r, http.StatusInternalServerError, payment.ErrNotConfigured, "Webhook not configured")
		return
	}

	payload, err := httputil.ReadBody(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	evt, err := h.webhooks.ConstructEvent(payload, r.Header.Get(payment.SignatureHeader))
	if err != nil {
		respondSafeError(w, r, http.StatusBadRequest, err, "Invalid signature")
		return
	}

	if err := h.donations.HandleEvent(r.Context(), evt); err != nil {
		respondSafeError(w, r, http.StatusInternalServerError, err, "Webhook handler failed")
		return
	}
	httputil.OK(w, map[string]bool{"received": true})
}
