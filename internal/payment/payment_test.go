package payment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession_EncodesForm(t *testing.T) {
	var form url.Values
	var auth, idem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		idem = r.Header.Get("Idempotency-Key")
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/pay/cs_test_1","mode":"subscription"}`))
	}))
	defer srv.Close()

	c := NewClientWithDoer(srv.URL, "sk_test_abc", srv.Client())
	session, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{
		Mode:          ModeSubscription,
		CustomerEmail: "donor@example.org",
		LineItems: []LineItem{{
			Name: "Monthly Donation", Description: "Recurring", UnitAmount: 2500, RecurringInterval: "month",
		}},
		SuccessURL:           "https://site/thanks",
		CancelURL:            "https://site/donate",
		Metadata:             map[string]string{"donor_name": "Anonymous"},
		SubscriptionMetadata: map[string]string{"donor_name": "Anonymous"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.URL)

	assert.Equal(t, "Bearer sk_test_abc", auth)
	assert.NotEmpty(t, idem)
	assert.Equal(t, "subscription", form.Get("mode"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "donor@example.org", form.Get("customer_email"))
	assert.Equal(t, "usd", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "2500", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "month", form.Get("line_items[0][price_data][recurring][interval]"))
	assert.Equal(t, "Monthly Donation", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "Anonymous", form.Get("metadata[donor_name]"))
	assert.Equal(t, "Anonymous", form.Get("subscription_data[metadata][donor_name]"))
}

func TestCreateCheckoutSession_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"amount_too_small","message":"Amount too small"}}`))
	}))
	defer srv.Close()

	c := NewClientWithDoer(srv.URL, "sk_test_abc", srv.Client())
	_, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{Mode: ModePayment})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "amount_too_small", apiErr.Code)
}

func TestCreateCheckoutSession_NotConfigured(t *testing.T) {
	c := NewClientWithDoer("http://unused", "", http.DefaultClient)
	_, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConstructEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"charge.refunded","data":{"object":{"id":"ch_1","payment_intent":"pi_1"}}}`)
	now := time.Unix(1_760_000_000, 0)
	v := NewVerifier("whsec_test", 5*time.Minute)
	v.now = func() time.Time { return now }

	evt, err := v.ConstructEvent(payload, SignPayload("whsec_test", now, payload))
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", evt.Type)

	var ch Charge
	require.NoError(t, evt.Decode(&ch))
	assert.Equal(t, "pi_1", ch.PaymentIntent)
}

func TestConstructEvent_Rejects(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"x"}`)
	now := time.Unix(1_760_000_000, 0)
	v := NewVerifier("whsec_test", 5*time.Minute)
	v.now = func() time.Time { return now }

	_, err := v.ConstructEvent(payload, "")
	assert.ErrorIs(t, err, ErrMissingSignature)

	_, err = v.ConstructEvent(payload, SignPayload("other_secret", now, payload))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = v.ConstructEvent([]byte(`{"id":"evt_2"}`), SignPayload("whsec_test", now, payload))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = v.ConstructEvent(payload, "garbage")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = v.ConstructEvent(payload, SignPayload("whsec_test", now.Add(-time.Hour), payload))
	assert.ErrorIs(t, err, ErrStaleSignature)

	_, err = NewVerifier("", 0).ConstructEvent(payload, "t=1,v1=00")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConstructEvent_AcceptsAnyMatchingSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"x"}`)
	now := time.Now()
	good := SignPayload("whsec_test", now, payload)
	header := good + ",v1=deadbeef"

	evt, err := NewVerifier("whsec_test", time.Minute).ConstructEvent(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", evt.ID)
}
