package donation

import (
	"context"
	"fmt"
	"time"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/notify"
	"github.com/pawsnclaws/intake-api/internal/payment"
	"github.com/pawsnclaws/intake-api/internal/pkg/distlock"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
)

// Webhook event types we act on. Others are acknowledged and ignored.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaid         = "invoice.payment_succeeded"
	EventChargeRefunded      = "charge.refunded"
)

// HandleEvent applies a verified webhook event to the store.
func (s *Service) HandleEvent(ctx context.Context, evt payment.Event) error {
	switch evt.Type {
	case EventCheckoutCompleted, EventSubscriptionCreated, EventSubscriptionUpdated,
		EventSubscriptionDeleted, EventInvoicePaid, EventChargeRefunded:
	default:
		logger.Debug("donation: ignoring webhook event", "type", evt.Type, "id", evt.ID)
		return nil
	}
	if s.store == nil {
		return ErrUnavailable
	}

	lock, claimed := s.claim(ctx, evt)
	if !claimed {
		logger.Info("donation: duplicate webhook delivery skipped", "type", evt.Type, "id", evt.ID)
		return nil
	}

	err := s.apply(ctx, evt)
	if lock != nil {
		finish := lock.Keep
		if err != nil {
			finish = lock.Release
		}
		if lerr := finish(context.WithoutCancel(ctx)); lerr != nil {
			logger.Warn("donation: event lock cleanup failed", "id", evt.ID, "error", lerr)
		}
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", evt.Type, evt.ID, err)
	}
	return nil
}

// WithEventLocks makes HandleEvent claim each event ID for eventClaimTTL so
// redelivered events are applied once. newLock may return nil to disable the
// claim.
func (s *Service) WithEventLocks(newLock func(key string, ttl time.Duration) distlock.DistLock) *Service {
	s.eventLock = newLock
	return s
}

// eventClaimTTL covers the processor's redelivery window for one event.
const eventClaimTTL = 72 * time.Hour

// claim reports false only when another delivery already holds the event.
// Lock backend failures fail open; the event is applied unguarded.
func (s *Service) claim(ctx context.Context, evt payment.Event) (distlock.DistLock, bool) {
	if s.eventLock == nil || evt.ID == "" {
		return nil, true
	}
	lock := s.eventLock("stripe_event:"+evt.ID, eventClaimTTL)
	if lock == nil {
		return nil, true
	}
	ok, err := lock.Acquire(ctx)
	if err != nil {
		logger.Warn("donation: event lock unavailable", "id", evt.ID, "error", err)
		return nil, true
	}
	if !ok {
		return nil, false
	}
	return lock, true
}

func (s *Service) apply(ctx context.Context, evt payment.Event) error {
	var err error
	switch evt.Type {
	case EventCheckoutCompleted:
		err = s.checkoutCompleted(ctx, evt)
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		err = s.subscriptionChanged(ctx, evt)
	case EventSubscriptionDeleted:
		err = s.subscriptionDeleted(ctx, evt)
	case EventInvoicePaid:
		err = s.invoicePaid(ctx, evt)
	case EventChargeRefunded:
		err = s.chargeRefunded(ctx, evt)
	}
	return err
}

func (s *Service) checkoutCompleted(ctx context.Context, evt payment.Event) error {
	var session payment.CheckoutSession
	if err := evt.Decode(&session); err != nil {
		return err
	}
	md := session.Metadata
	donationType := "one_time"
	if md["donation_type"] == "monthly" {
		donationType = "recurring"
	}
	d := domain.Donation{
		Amount:               session.AmountTotal,
		DonationType:         donationType,
		PaymentMethod:        "stripe",
		StripePaymentID:      session.PaymentIntent,
		StripeSubscriptionID: session.Subscription,
		DonorName:            md["donor_name"],
		DonorEmail:           session.CustomerEmail,
		IsAnonymous:          md["donor_name"] == "Anonymous",
		Message:              md["message"],
		FeeCovered:           md["cover_fees"] == "true",
		CampaignID:           md["campaign_id"],
		City:                 md["city"],
	}
	if err := s.store.Insert(ctx, d.Kind(), d.Row()); err != nil {
		return err
	}
	logger.Info("donation: recorded", "session", session.ID, "amount", d.Amount, "type", d.DonationType)
	s.sendReceipt(ctx, d)
	return nil
}

// sendReceipt emails the donor. Failures are logged only; the payment is
// already recorded.
func (s *Service) sendReceipt(ctx context.Context, d domain.Donation) {
	if s.notifier == nil || d.DonorEmail == "" {
		return
	}
	name := d.DonorName
	if d.IsAnonymous {
		name = ""
	}
	t := s.tenants.Resolve(d.City)
	err := s.notifier.Notify(ctx, t, notify.Notice{
		Template: notify.TemplateDonationReceipt,
		To:       d.DonorEmail,
		Subject:  "Thank you for your donation to " + t.Name,
		Data: map[string]any{
			"donor_name": name,
			"amount":     formatCents(d.Amount),
			"recurring":  d.DonationType == "recurring",
		},
	})
	if err != nil {
		logger.Warn("donation: receipt email failed", "email", d.DonorEmail, "error", err)
	}
}

func (s *Service) subscriptionChanged(ctx context.Context, evt payment.Event) error {
	var sub payment.Subscription
	if err := evt.Decode(&sub); err != nil {
		return err
	}
	price := sub.FirstPrice()
	interval := "month"
	if price.Recurring != nil && price.Recurring.Interval != "" {
		interval = price.Recurring.Interval
	}
	status := "paused"
	if sub.Status == "active" {
		status = "active"
	}
	rec := domain.RecurringSubscription{
		StripeSubscriptionID: sub.ID,
		StripeCustomerID:     sub.Customer,
		Amount:               price.UnitAmount,
		Interval:             interval,
		Status:               status,
		Tier:                 sub.Metadata["tier"],
		ColonyID:             sub.Metadata["colony_id"],
		AnimalID:             sub.Metadata["animal_id"],
	}
	if err := s.store.Upsert(ctx, rec.Kind(), "stripe_subscription_id", rec.Row()); err != nil {
		return err
	}
	logger.Info("donation: subscription updated", "subscription", sub.ID, "status", status)
	return nil
}

func (s *Service) subscriptionDeleted(ctx context.Context, evt payment.Event) error {
	var sub payment.Subscription
	if err := evt.Decode(&sub); err != nil {
		return err
	}
	_, err := s.store.Update(ctx, domain.KindSubscription,
		map[string]any{"stripe_subscription_id": sub.ID},
		map[string]any{"status": "cancelled", "cancelled_at": s.now()})
	if err != nil {
		return err
	}
	logger.Info("donation: subscription cancelled", "subscription", sub.ID)
	return nil
}

func (s *Service) invoicePaid(ctx context.Context, evt payment.Event) error {
	var inv payment.Invoice
	if err := evt.Decode(&inv); err != nil {
		return err
	}
	if inv.Subscription == "" {
		return nil
	}
	d := domain.Donation{
		Amount:               inv.AmountPaid,
		DonationType:         "recurring",
		PaymentMethod:        "stripe",
		StripePaymentID:      inv.PaymentIntent,
		StripeSubscriptionID: inv.Subscription,
		DonorEmail:           inv.CustomerEmail,
	}
	if err := s.store.Insert(ctx, d.Kind(), d.Row()); err != nil {
		return err
	}
	logger.Info("donation: recurring payment recorded", "invoice", inv.ID, "amount", d.Amount)
	return nil
}

func (s *Service) chargeRefunded(ctx context.Context, evt payment.Event) error {
	var ch payment.Charge
	if err := evt.Decode(&ch); err != nil {
		return err
	}
	if ch.PaymentIntent == "" {
		return nil
	}
	n, err := s.store.Update(ctx, domain.KindDonation,
		map[string]any{"stripe_payment_id": ch.PaymentIntent},
		map[string]any{"status": "refunded"})
	if err != nil {
		return err
	}
	logger.Info("donation: refunded", "charge", ch.ID, "rows", n)
	return nil
}

func formatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
