package donation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/notify"
	"github.com/pawsnclaws/intake-api/internal/payment"
	"github.com/pawsnclaws/intake-api/internal/pkg/distlock"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
	"github.com/pawsnclaws/intake-api/internal/service/records"
	"github.com/pawsnclaws/intake-api/internal/tenant"
	"github.com/pawsnclaws/intake-api/internal/validate"
)

// Processor creates hosted checkout sessions.
type Processor interface {
	CreateCheckoutSession(ctx context.Context, p payment.CheckoutParams) (*payment.CheckoutSession, error)
}

// Notifier sends rendered notices for a tenant.
type Notifier interface {
	Notify(ctx context.Context, t tenant.Config, notices ...notify.Notice) error
}

var checkoutSchema = validate.New(
	validate.Int("amount").
		Required("Minimum donation is $1").
		Invalid("Please enter a valid amount").
		Min(domain.MinDonationCents, "Minimum donation is $1").
		Max(domain.MaxDonationCents, "For donations over $100,000, please contact us"),
	validate.Enum("donationType", "one-time", "monthly").Invalid("Invalid donation type").Default("one-time"),
	validate.Bool("coverFees"),
	validate.String("donorName").MaxLen(100, "Name must be less than 100 characters"),
	validate.Email("donorEmail"),
	validate.String("message").MaxLen(5000, "Message must be less than 5000 characters"),
	validate.String("campaignId").MaxLen(100, "Invalid campaign"),
	validate.String("city").MaxLen(50, "Invalid city"),
)

// Service implements donation checkout and webhook handling.
type Service struct {
	processor Processor
	store     records.Store
	tenants   *tenant.Registry
	notifier  Notifier
	appURL    string
	now       func() time.Time
	// eventLock, when set, claims each webhook event ID before it is applied.
	eventLock func(key string, ttl time.Duration) distlock.DistLock
}

// NewService creates a donation service. store and notifier may be nil.
func NewService(processor Processor, store records.Store, tenants *tenant.Registry, notifier Notifier, appURL string) *Service {
	return &Service{
		processor: processor,
		store:     store,
		tenants:   tenants,
		notifier:  notifier,
		appURL:    strings.TrimRight(appURL, "/"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Checkout validates raw and creates a checkout session, returning its URL.
// Validation failures return *validate.Errors; processor failures wrap
// ErrCheckoutFailed.
func (s *Service) Checkout(ctx context.Context, raw any) (string, error) {
	vals, err := checkoutSchema.Validate(raw)
	if err != nil {
		return "", err
	}
	t := s.tenants.Resolve(vals.String("city"))
	req := domain.DonationCheckoutRequest{
		Amount:       vals.Int("amount"),
		DonationType: vals.String("donationType"),
		CoverFees:    vals.Bool("coverFees"),
		DonorName:    vals.String("donorName"),
		DonorEmail:   vals.String("donorEmail"),
		Message:      vals.String("message"),
		CampaignID:   vals.String("campaignId"),
		City:         t.Slug,
	}

	session, err := s.processor.CreateCheckoutSession(ctx, s.checkoutParams(req, t))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	logger.Info("donation: checkout session created",
		"session", session.ID, "amount", req.Amount, "type", req.DonationType, "tenant", t.Slug)
	return session.URL, nil
}

func (s *Service) checkoutParams(req domain.DonationCheckoutRequest, t tenant.Config) payment.CheckoutParams {
	md := req.Metadata()
	p := payment.CheckoutParams{
		Mode:          payment.ModePayment,
		CustomerEmail: req.DonorEmail,
		SuccessURL:    s.appURL + "/donate/thank-you?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.appURL + "/donate",
		Metadata:      md,
	}
	item := payment.LineItem{
		Currency:    "usd",
		Name:        "Donation to " + t.Name,
		Description: fmt.Sprintf("One-time donation to help %s's animals", t.City),
		UnitAmount:  req.Amount,
		Quantity:    1,
	}
	if req.Monthly() {
		p.Mode = payment.ModeSubscription
		p.SubscriptionMetadata = md
		item.Name = "Monthly Donation to " + t.Name
		item.Description = fmt.Sprintf("Recurring monthly support for %s's animals", t.City)
		item.RecurringInterval = "month"
	}
	p.LineItems = []payment.LineItem{item}
	return p
}
