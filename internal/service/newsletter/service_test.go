package newsletter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/notify"
	"github.com/pawsnclaws/intake-api/internal/service/records"
	"github.com/pawsnclaws/intake-api/internal/service/records/recordstest"
	"github.com/pawsnclaws/intake-api/internal/tenant"
	"github.com/pawsnclaws/intake-api/internal/validate"
)

type fakeNotifier struct {
	notices []notify.Notice
	err     error
}

func (f *fakeNotifier) Notify(_ context.Context, _ tenant.Config, notices ...notify.Notice) error {
	f.notices = append(f.notices, notices...)
	return f.err
}

func newTestService(store records.Store, n Notifier) *Service {
	return NewService(store, tenant.NewRegistry(nil, ""), n)
}

func TestSubscribe_ThenDuplicate(t *testing.T) {
	store := recordstest.New()
	n := &fakeNotifier{}
	svc := newTestService(store, n)
	ctx := context.Background()

	status, err := svc.Subscribe(ctx, map[string]any{"email": "Fan@Example.org "})
	require.NoError(t, err)
	assert.Equal(t, Subscribed, status)

	status, err = svc.Subscribe(ctx, map[string]any{"email": "fan@example.org"})
	require.NoError(t, err)
	assert.Equal(t, AlreadySubscribed, status)

	rows := store.Rows(domain.KindNewsletter)
	require.Len(t, rows, 1)
	assert.Equal(t, "fan@example.org", rows[0]["email"])
	assert.Equal(t, "website", rows[0]["source"])
	require.Len(t, n.notices, 1, "duplicate must not send a second welcome")
	assert.Equal(t, "Welcome to the PawsNClaws Newsletter!", n.notices[0].Subject)
}

func TestSubscribe_ReactivatesUnsubscribed(t *testing.T) {
	store := recordstest.New()
	svc := newTestService(store, &fakeNotifier{})
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, map[string]any{"email": "back@example.org"})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, map[string]any{"email": "back@example.org"}))
	assert.Equal(t, "unsubscribed", store.Rows(domain.KindNewsletter)[0]["status"])

	status, err := svc.Subscribe(ctx, map[string]any{"email": "back@example.org"})
	require.NoError(t, err)
	assert.Equal(t, Resubscribed, status)
	assert.Equal(t, "active", store.Rows(domain.KindNewsletter)[0]["status"])
}

func TestSubscribe_WelcomeFailureIsNotFatal(t *testing.T) {
	svc := newTestService(recordstest.New(), &fakeNotifier{err: errors.New("smtp down")})

	status, err := svc.Subscribe(context.Background(), map[string]any{"email": "ok@example.org"})
	require.NoError(t, err)
	assert.Equal(t, Subscribed, status)
}

func TestSubscribe_StoreOutageStillWelcomes(t *testing.T) {
	store := recordstest.New()
	store.Err = recordstest.ErrUnavailable
	n := &fakeNotifier{}
	svc := newTestService(store, n)

	status, err := svc.Subscribe(context.Background(), map[string]any{"email": "ok@example.org"})
	require.NoError(t, err)
	assert.Equal(t, Subscribed, status)
	assert.Len(t, n.notices, 1)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	svc := newTestService(recordstest.New(), &fakeNotifier{})

	_, err := svc.Subscribe(context.Background(), map[string]any{"email": "nope"})
	var verrs *validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Please enter a valid email address", verrs.First())
}

func TestUnsubscribe_UnknownAddressSucceeds(t *testing.T) {
	svc := newTestService(recordstest.New(), &fakeNotifier{})
	assert.NoError(t, svc.Unsubscribe(context.Background(), map[string]any{"email": "ghost@example.org"}))
}

func TestUnsubscribe_RequiresValidEmail(t *testing.T) {
	svc := newTestService(recordstest.New(), &fakeNotifier{})

	err := svc.Unsubscribe(context.Background(), map[string]any{"email": "bad"})
	var verrs *validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Valid email is required", verrs.First())

	err = svc.Unsubscribe(context.Background(), map[string]any{})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Valid email is required", verrs.First())
}

func TestUnsubscribe_StoreFailureIsSwallowed(t *testing.T) {
	store := recordstest.New()
	store.Err = recordstest.ErrUnavailable
	svc := newTestService(store, &fakeNotifier{})

	err := svc.Unsubscribe(context.Background(), map[string]any{"email": "a@example.org"})
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	store := recordstest.New()
	svc := newTestService(store, &fakeNotifier{})
	ctx := context.Background()
	for _, e := range []string{"a@example.org", "b@example.org"} {
		_, err := svc.Subscribe(ctx, map[string]any{"email": e})
		require.NoError(t, err)
	}

	subs, total, err := svc.List(ctx, records.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "b@example.org", subs[0]["email"])

	_, _, err = svc.List(ctx, records.ListFilter{Status: "bogus"})
	assert.ErrorIs(t, err, records.ErrInvalidStatus)

	_, _, err = newTestService(nil, &fakeNotifier{}).List(ctx, records.ListFilter{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
