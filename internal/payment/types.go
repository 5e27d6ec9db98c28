package payment

import "encoding/json"

// Checkout modes.
const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

// CheckoutParams describes a hosted checkout session.
type CheckoutParams struct {
	Mode          string
	CustomerEmail string
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
	// SubscriptionMetadata is copied onto the created subscription.
	SubscriptionMetadata map[string]string
}

// LineItem is a single ad-hoc priced product.
type LineItem struct {
	Currency    string
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
	// RecurringInterval makes the price recurring ("month", "year").
	RecurringInterval string
}

// CheckoutSession is the subset of a Stripe checkout session we read.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Mode          string            `json:"mode"`
	AmountTotal   int64             `json:"amount_total"`
	PaymentIntent string            `json:"payment_intent"`
	Subscription  string            `json:"subscription"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// Subscription is the subset of a Stripe subscription we read.
type Subscription struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
	Items    struct {
		Data []struct {
			Price Price `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// Price is a Stripe price.
type Price struct {
	UnitAmount int64 `json:"unit_amount"`
	Recurring  *struct {
		Interval string `json:"interval"`
	} `json:"recurring"`
}

// FirstPrice returns the first item's price, or a zero Price.
func (s Subscription) FirstPrice() Price {
	if len(s.Items.Data) == 0 {
		return Price{}
	}
	return s.Items.Data[0].Price
}

// Invoice is the subset of a Stripe invoice we read.
type Invoice struct {
	ID            string `json:"id"`
	AmountPaid    int64  `json:"amount_paid"`
	PaymentIntent string `json:"payment_intent"`
	Subscription  string `json:"subscription"`
	CustomerEmail string `json:"customer_email"`
}

// Charge is the subset of a Stripe charge we read.
type Charge struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
}

// Event is a webhook event envelope.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// Decode unmarshals the event's object into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Data.Object, v)
}

type apiErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
