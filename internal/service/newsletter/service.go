package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/notify"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
	"github.com/pawsnclaws/intake-api/internal/service/records"
	"github.com/pawsnclaws/intake-api/internal/tenant"
	"github.com/pawsnclaws/intake-api/internal/validate"
)

// Status is the outcome of a subscribe call.
type Status int

const (
	// Subscribed means a new subscription was created, or the store was
	// unavailable and the welcome email went out anyway.
	Subscribed Status = iota
	// Resubscribed means a previously unsubscribed address was reactivated.
	Resubscribed
	// AlreadySubscribed means the address is already active.
	AlreadySubscribed
)

var subscribeSchema = validate.New(
	validate.Email("email").Required("").Invalid("Please enter a valid email address"),
	validate.String("source").MaxLen(50, "Invalid source").Default("website"),
	validate.String("city").MaxLen(50, "Invalid city"),
)

var unsubscribeSchema = validate.New(
	validate.Email("email").Required("Valid email is required").Invalid("Valid email is required"),
)

// Notifier sends rendered notices for a tenant.
type Notifier interface {
	Notify(ctx context.Context, t tenant.Config, notices ...notify.Notice) error
}

// Service implements newsletter operations. It is safe for concurrent use.
type Service struct {
	store    records.Store
	tenants  *tenant.Registry
	notifier Notifier
	now      func() time.Time
}

// NewService creates a newsletter service. store may be nil.
func NewService(store records.Store, tenants *tenant.Registry, notifier Notifier) *Service {
	return &Service{store: store, tenants: tenants, notifier: notifier, now: func() time.Time { return time.Now().UTC() }}
}

// Subscribe adds the address in raw to the list and sends a welcome email.
// Validation failures return *validate.Errors. A welcome email failure is
// logged and does not fail the call.
func (s *Service) Subscribe(ctx context.Context, raw any) (Status, error) {
	vals, err := subscribeSchema.Validate(raw)
	if err != nil {
		return Subscribed, err
	}
	t := s.tenants.Resolve(vals.String("city"))
	sub := domain.NewsletterSubscriber{
		Email:  vals.String("email"),
		Source: vals.String("source"),
		City:   t.Slug,
	}

	status, err := s.insert(ctx, sub)
	if err != nil {
		return status, err
	}
	if status == AlreadySubscribed {
		return status, nil
	}

	err = s.notifier.Notify(ctx, t, notify.Notice{
		Template: notify.TemplateNewsletterWelcome,
		To:       sub.Email,
		Subject:  "Welcome to the PawsNClaws Newsletter!",
		Data:     map[string]any{"email": sub.Email},
	})
	if err != nil {
		logger.Warn("newsletter: welcome email failed", "email", sub.Email, "error", err)
	}
	return status, nil
}

func (s *Service) insert(ctx context.Context, sub domain.NewsletterSubscriber) (Status, error) {
	if s.store == nil {
		return Subscribed, nil
	}
	err := s.store.Insert(ctx, sub.Kind(), sub.Row())
	switch {
	case err == nil:
		return Subscribed, nil
	case !errors.Is(err, records.ErrConflict):
		logger.Warn("newsletter: persist failed, continuing", "email", sub.Email, "error", err)
		return Subscribed, nil
	}

	n, err := s.store.Update(ctx, domain.KindNewsletter,
		map[string]any{"email": sub.Email, "status": "unsubscribed"},
		map[string]any{"status": "active", "subscribed_at": s.now(), "unsubscribed_at": nil})
	if err != nil {
		logger.Warn("newsletter: reactivate failed", "email", sub.Email, "error", err)
		return AlreadySubscribed, nil
	}
	if n > 0 {
		return Resubscribed, nil
	}
	return AlreadySubscribed, nil
}

// Unsubscribe marks the address inactive. Unknown addresses succeed silently
// so callers cannot probe the list.
func (s *Service) Unsubscribe(ctx context.Context, raw any) error {
	vals, err := unsubscribeSchema.Validate(raw)
	if err != nil {
		return err
	}
	if s.store == nil {
		logger.Warn("newsletter: unsubscribe without store", "email", vals.String("email"))
		return nil
	}
	_, err = s.store.Update(ctx, domain.KindNewsletter,
		map[string]any{"email": vals.String("email")},
		map[string]any{"status": "unsubscribed", "unsubscribed_at": s.now()})
	if err != nil {
		// Answer as if it worked so the reply never reveals list state.
		logger.Warn("newsletter: unsubscribe failed", "email", vals.String("email"), "error", err)
	}
	return nil
}

// List returns subscribers newest first. An empty status lists everyone.
func (s *Service) List(ctx context.Context, filter records.ListFilter) ([]domain.Record, int, error) {
	if s.store == nil {
		return nil, 0, ErrUnavailable
	}
	if filter.Status != "" && !domain.KindNewsletter.AllowsStatus(filter.Status) {
		return nil, 0, records.ErrInvalidStatus
	}
	subs, total, err := s.store.List(ctx, domain.KindNewsletter, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, total, nil
}
