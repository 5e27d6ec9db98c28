package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pawsnclaws/intake-api/internal/config"
	"github.com/pawsnclaws/intake-api/internal/pkg/httpretry"
)

// Client is a Stripe API client
type Client struct {
	baseURL    string
	secretKey  string
	httpClient httpretry.HTTPDoer
	newKey     func() string
}

// NewClient creates a Stripe client. Mutating requests carry a fresh
// Idempotency-Key so the retry client may safely replay them.
func NewClient(cfg config.StripeConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: cfg.Timeout(),
		}, 2),
		newKey: uuid.NewString,
	}
}

// NewClientWithDoer creates a client with a custom transport. Used by tests.
func NewClientWithDoer(baseURL, secretKey string, doer httpretry.HTTPDoer) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: doer,
		newKey:     uuid.NewString,
	}
}

// Configured reports whether a secret key is set.
func (c *Client) Configured() bool { return c != nil && c.secretKey != "" }

// CreateCheckoutSession creates a hosted checkout session.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	body, err := c.post(ctx, "/v1/checkout/sessions", encodeCheckout(p))
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}
	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parsing checkout session: %w", err)
	}
	return &session, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", c.newKey())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var parsed apiErrorBody
		if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
			apiErr.Type = parsed.Error.Type
			apiErr.Code = parsed.Error.Code
			apiErr.Message = parsed.Error.Message
		}
		return nil, apiErr
	}
	return body, nil
}

// encodeCheckout flattens params into Stripe's bracketed form encoding.
func encodeCheckout(p CheckoutParams) url.Values {
	form := url.Values{}
	form.Set("mode", p.Mode)
	form.Set("payment_method_types[0]", "card")
	if p.CustomerEmail != "" {
		form.Set("customer_email", p.CustomerEmail)
	}
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)

	for i, item := range p.LineItems {
		prefix := "line_items[" + strconv.Itoa(i) + "]"
		pd := prefix + "[price_data]"
		currency := item.Currency
		if currency == "" {
			currency = "usd"
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		form.Set(pd+"[currency]", currency)
		form.Set(pd+"[product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(pd+"[product_data][description]", item.Description)
		}
		form.Set(pd+"[unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		if item.RecurringInterval != "" {
			form.Set(pd+"[recurring][interval]", item.RecurringInterval)
		}
		form.Set(prefix+"[quantity]", strconv.FormatInt(qty, 10))
	}

	setMetadata(form, "metadata", p.Metadata)
	setMetadata(form, "subscription_data[metadata]", p.SubscriptionMetadata)
	return form
}

func setMetadata(form url.Values, prefix string, md map[string]string) {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		form.Set(prefix+"["+k+"]", md[k])
	}
}
