package intake

import (
	"context"
	"fmt"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/notify"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
	"github.com/pawsnclaws/intake-api/internal/service/records"
	"github.com/pawsnclaws/intake-api/internal/tenant"
	"github.com/pawsnclaws/intake-api/internal/validate"
)

// Outcome is the result of one side-effecting pipeline step.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
	Skipped   Outcome = "skipped"
)

// Result reports what happened to the persist and notify steps.
type Result struct {
	Persist Outcome
	Notify  Outcome
}

// Notifier renders and sends notices for a tenant.
type Notifier interface {
	Notify(ctx context.Context, t tenant.Config, notices ...notify.Notice) error
}

// Form describes one intake endpoint.
type Form[T domain.Submission] struct {
	// Name is used in logs and error context.
	Name   string
	Schema *validate.Schema
	// Decode builds the submission from validated values. The resolved
	// tenant slug should be copied into the submission.
	Decode func(v validate.Values, t tenant.Config) T
	// Notices lists the emails to send after persisting.
	Notices func(sub T, t tenant.Config) []notify.Notice
}

// Service wires the pipeline collaborators.
type Service struct {
	store    records.Store
	tenants  *tenant.Registry
	notifier Notifier
}

// NewService creates an intake service. A nil store disables persistence;
// every persist step then reports Skipped.
func NewService(store records.Store, tenants *tenant.Registry, notifier Notifier) *Service {
	return &Service{store: store, tenants: tenants, notifier: notifier}
}

// Submit runs raw through form's pipeline. The returned error is either a
// *validate.Errors or wraps ErrNotification.
func Submit[T domain.Submission](ctx context.Context, s *Service, form Form[T], raw any) (T, Result, error) {
	var zero T
	result := Result{Persist: Skipped, Notify: Skipped}

	vals, err := form.Schema.Validate(raw)
	if err != nil {
		return zero, result, err
	}

	t := s.tenants.Resolve(vals.String("city"))
	sub := form.Decode(vals, t)

	result.Persist, _ = s.Persist(ctx, sub)

	if form.Notices != nil {
		notices := form.Notices(sub, t)
		if len(notices) > 0 {
			if err := s.notifier.Notify(ctx, t, notices...); err != nil {
				result.Notify = Failed
				return sub, result, fmt.Errorf("%s: %w: %w", form.Name, ErrNotification, err)
			}
			result.Notify = Succeeded
		}
	}

	logger.Info("intake: submission processed",
		"form", form.Name, "tenant", t.Slug, "persist", result.Persist, "notify", result.Notify)
	return sub, result, nil
}

// Persist writes sub to the store. Failures are logged; the error is
// returned so callers that care about conflicts can inspect it.
func (s *Service) Persist(ctx context.Context, sub domain.Submission) (Outcome, error) {
	if s.store == nil {
		return Skipped, nil
	}
	if err := s.store.Insert(ctx, sub.Kind(), sub.Row()); err != nil {
		logger.Warn("intake: persist failed, continuing", "kind", sub.Kind(), "error", err)
		return Failed, err
	}
	return Succeeded, nil
}
