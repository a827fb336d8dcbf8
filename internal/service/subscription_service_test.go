package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"minerals/backend/internal/auth"
	"minerals/backend/internal/billing"
	billingmock "minerals/backend/internal/billing/mock"
	"minerals/backend/internal/model"
	repomock "minerals/backend/internal/repository/mock"
	"minerals/backend/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testOrigin = "https://app.example.com"

func newSubscriptionService(t *testing.T) (service.SubscriptionService, *repomock.MockBillingRepository, *billingmock.MockProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockBillingRepository(ctrl)
	provider := billingmock.NewMockProvider(ctrl)
	return service.NewSubscriptionService(repo, provider, testOrigin), repo, provider
}

func TestSubscriptionService_Status(t *testing.T) {
	svc, repo, _ := newSubscriptionService(t)
	ctx := context.Background()

	repo.EXPECT().GetSubscription(ctx, "free_user").Return(nil, nil)
	status, err := svc.Status(ctx, "free_user")
	require.NoError(t, err)
	require.False(t, status.IsPro)
	require.Equal(t, model.PlanFree, status.Plan)
	require.Equal(t, model.StatusFree, status.Status)

	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().GetSubscription(ctx, "pro_user").Return(&model.Subscription{
		UserID: "pro_user", Status: model.StatusTrialing, Plan: model.PlanPro, CurrentPeriodEnd: &end,
	}, nil)
	status, err = svc.Status(ctx, "pro_user")
	require.NoError(t, err)
	require.True(t, status.IsPro)
	require.Equal(t, end, *status.CurrentPeriodEnd)

	repo.EXPECT().GetSubscription(ctx, "late").Return(&model.Subscription{
		UserID: "late", Status: model.StatusPastDue, Plan: model.PlanPro,
	}, nil)
	pro, err := svc.IsPro(ctx, "late")
	require.NoError(t, err)
	require.False(t, pro)
}

func TestSubscriptionService_Checkout_NewCustomer(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()
	id := auth.Identity{ID: "user_1", Email: "ada@example.com", Name: "Ada"}

	repo.EXPECT().GetSubscription(ctx, "user_1").Return(nil, nil)
	repo.EXPECT().GetCustomerByUser(ctx, "user_1").Return(nil, nil)
	provider.EXPECT().CreateCustomer(ctx, "user_1", "ada@example.com", "Ada").Return("cus_123", nil)
	repo.EXPECT().CreateCustomer(ctx, "user_1", "cus_123").Return(&model.StripeCustomer{UserID: "user_1", StripeCustomerID: "cus_123"}, nil)
	provider.EXPECT().CreateCheckoutSession(ctx, billing.CheckoutRequest{
		CustomerID: "cus_123",
		UserID:     "user_1",
		SuccessURL: testOrigin + "/app?upgraded=true",
		CancelURL:  testOrigin + "/app?canceled=true",
	}).Return("https://checkout.stripe.com/c/pay/cs_1", nil)

	url, err := svc.Checkout(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "https://checkout.stripe.com/c/pay/cs_1", url)
}

func TestSubscriptionService_Checkout_ReusesCustomer(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	repo.EXPECT().GetSubscription(ctx, "user_1").Return(&model.Subscription{Status: model.StatusCanceled, Plan: model.PlanPro}, nil)
	repo.EXPECT().GetCustomerByUser(ctx, "user_1").Return(&model.StripeCustomer{UserID: "user_1", StripeCustomerID: "cus_old"}, nil)
	provider.EXPECT().
		CreateCheckoutSession(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req billing.CheckoutRequest) (string, error) {
			require.Equal(t, "cus_old", req.CustomerID)
			return "https://checkout.example/1", nil
		})

	_, err := svc.Checkout(ctx, auth.Identity{ID: "user_1"})
	require.NoError(t, err)
}

func TestSubscriptionService_Checkout_AlreadyPro(t *testing.T) {
	svc, repo, _ := newSubscriptionService(t)
	ctx := context.Background()

	repo.EXPECT().GetSubscription(ctx, "user_1").Return(&model.Subscription{Status: model.StatusActive, Plan: model.PlanPro}, nil)

	_, err := svc.Checkout(ctx, auth.Identity{ID: "user_1"})
	require.ErrorIs(t, err, service.ErrAlreadySubscribed)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestSubscriptionService_Checkout_ConcurrentSingleCustomer(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	release := make(chan struct{})
	var mu sync.Mutex
	stored := ""

	repo.EXPECT().GetSubscription(ctx, "user_1").Return(nil, nil).Times(2)
	repo.EXPECT().GetCustomerByUser(ctx, "user_1").DoAndReturn(func(context.Context, string) (*model.StripeCustomer, error) {
		mu.Lock()
		defer mu.Unlock()
		if stored == "" {
			return nil, nil
		}
		return &model.StripeCustomer{UserID: "user_1", StripeCustomerID: stored}, nil
	}).MinTimes(1).MaxTimes(2)
	provider.EXPECT().CreateCustomer(ctx, "user_1", "", "").DoAndReturn(func(context.Context, string, string, string) (string, error) {
		<-release
		return "cus_once", nil
	}).Times(1)
	repo.EXPECT().CreateCustomer(ctx, "user_1", "cus_once").DoAndReturn(func(context.Context, string, string) (*model.StripeCustomer, error) {
		mu.Lock()
		stored = "cus_once"
		mu.Unlock()
		return &model.StripeCustomer{UserID: "user_1", StripeCustomerID: "cus_once"}, nil
	})
	provider.EXPECT().CreateCheckoutSession(ctx, gomock.Any()).Return("https://checkout.example/x", nil).Times(2)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Checkout(ctx, auth.Identity{ID: "user_1"})
			errs <- err
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestSubscriptionService_Portal(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	repo.EXPECT().GetCustomerByUser(ctx, "nobody").Return(nil, nil)
	_, err := svc.Portal(ctx, "nobody")
	require.ErrorIs(t, err, service.ErrNotFound)

	repo.EXPECT().GetCustomerByUser(ctx, "user_1").Return(&model.StripeCustomer{StripeCustomerID: "cus_1"}, nil)
	provider.EXPECT().CreatePortalSession(ctx, "cus_1", testOrigin+"/app").Return("https://billing.example/p", nil)
	url, err := svc.Portal(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, "https://billing.example/p", url)
}

func TestSubscriptionService_Unconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockBillingRepository(ctrl)
	svc := service.NewSubscriptionService(repo, nil, testOrigin)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, auth.Identity{ID: "user_1"})
	require.ErrorIs(t, err, service.ErrBillingUnavailable)
	_, err = svc.Portal(ctx, "user_1")
	require.ErrorIs(t, err, service.ErrBillingUnavailable)
	_, err = svc.HandleWebhook(ctx, []byte("{}"), "t=1,v1=abc")
	require.ErrorIs(t, err, service.ErrBillingUnavailable)

	repo.EXPECT().GetSubscription(ctx, "user_1").Return(nil, nil)
	status, err := svc.Status(ctx, "user_1")
	require.NoError(t, err)
	require.False(t, status.IsPro)
}

func TestSubscriptionService_Webhook_Signature(t *testing.T) {
	svc, _, provider := newSubscriptionService(t)
	ctx := context.Background()

	_, err := svc.HandleWebhook(ctx, []byte("{}"), "")
	require.ErrorIs(t, err, service.ErrInvalid)

	provider.EXPECT().ParseEvent([]byte("{}"), "bad").Return(billing.Event{}, billing.ErrInvalidSignature)
	_, err = svc.HandleWebhook(ctx, []byte("{}"), "bad")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestSubscriptionService_Webhook_SubscriptionUpdated(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()
	end := time.Unix(1_750_000_000, 0).UTC()

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{
		ID:   "evt_1",
		Type: billing.EventSubscriptionUpdated,
		Subscription: &billing.SubscriptionInfo{
			ID: "sub_1", CustomerID: "cus_1", Status: model.StatusActive, CurrentPeriodEnd: end, CancelAtPeriodEnd: true,
		},
	}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_1").Return(false, nil)
	repo.EXPECT().GetCustomerByStripeID(ctx, "cus_1").Return(&model.StripeCustomer{UserID: "user_1", StripeCustomerID: "cus_1"}, nil)
	repo.EXPECT().
		UpsertSubscription(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sub model.Subscription) error {
			require.Equal(t, "user_1", sub.UserID)
			require.Equal(t, "sub_1", sub.StripeSubscriptionID)
			require.Equal(t, model.PlanPro, sub.Plan)
			require.Equal(t, model.StatusActive, sub.Status)
			require.True(t, sub.CancelAtPeriodEnd)
			require.Equal(t, end, *sub.CurrentPeriodEnd)
			return nil
		})
	repo.EXPECT().RecordEvent(ctx, "evt_1", billing.EventSubscriptionUpdated).Return(nil)

	res, err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.NoError(t, err)
	require.False(t, res.Ignored)
	require.False(t, res.Duplicate)
}

func TestSubscriptionService_Webhook_Duplicate(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{ID: "evt_1", Type: billing.EventInvoiceFailed}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_1").Return(true, nil)

	res, err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.NoError(t, err)
	require.True(t, res.Duplicate)
}

func TestSubscriptionService_Webhook_Deleted(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{
		ID: "evt_2", Type: billing.EventSubscriptionDeleted,
		Subscription: &billing.SubscriptionInfo{ID: "sub_1", CustomerID: "cus_1", Status: model.StatusCanceled},
	}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_2").Return(false, nil)
	repo.EXPECT().GetCustomerByStripeID(ctx, "cus_1").Return(&model.StripeCustomer{UserID: "user_1"}, nil)
	repo.EXPECT().GetSubscription(ctx, "user_1").Return(&model.Subscription{
		UserID: "user_1", Status: model.StatusActive, Plan: model.PlanPro, CancelAtPeriodEnd: true,
	}, nil)
	repo.EXPECT().
		UpsertSubscription(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sub model.Subscription) error {
			require.Equal(t, model.StatusCanceled, sub.Status)
			require.False(t, sub.CancelAtPeriodEnd)
			require.False(t, sub.IsPro())
			return nil
		})
	repo.EXPECT().RecordEvent(ctx, "evt_2", billing.EventSubscriptionDeleted).Return(nil)

	_, err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.NoError(t, err)
}

func TestSubscriptionService_Webhook_InvoicePaid(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()
	end := time.Unix(1_760_000_000, 0).UTC()

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{
		ID: "evt_3", Type: billing.EventInvoicePaid,
		Invoice: &billing.InvoiceInfo{ID: "in_1", CustomerID: "cus_1", SubscriptionID: "sub_1"},
	}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_3").Return(false, nil)
	repo.EXPECT().GetCustomerByStripeID(ctx, "cus_1").Return(&model.StripeCustomer{UserID: "user_1"}, nil)
	repo.EXPECT().GetSubscription(ctx, "user_1").Return(&model.Subscription{UserID: "user_1", Status: model.StatusPastDue, Plan: model.PlanPro}, nil)
	provider.EXPECT().GetSubscription(ctx, "sub_1").Return(billing.SubscriptionInfo{ID: "sub_1", Status: model.StatusActive, CurrentPeriodEnd: end}, nil)
	repo.EXPECT().
		UpsertSubscription(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sub model.Subscription) error {
			require.Equal(t, model.StatusActive, sub.Status)
			require.Equal(t, end, *sub.CurrentPeriodEnd)
			return nil
		})
	repo.EXPECT().RecordEvent(ctx, "evt_3", billing.EventInvoicePaid).Return(nil)

	_, err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.NoError(t, err)
}

func TestSubscriptionService_Webhook_InvoiceFailed(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{
		ID: "evt_4", Type: billing.EventInvoiceFailed,
		Invoice: &billing.InvoiceInfo{ID: "in_2", CustomerID: "cus_1", SubscriptionID: "sub_1"},
	}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_4").Return(false, nil)
	repo.EXPECT().GetCustomerByStripeID(ctx, "cus_1").Return(&model.StripeCustomer{UserID: "user_1"}, nil)
	repo.EXPECT().UpdateSubscriptionStatus(ctx, "user_1", model.StatusPastDue).Return(nil)
	repo.EXPECT().RecordEvent(ctx, "evt_4", billing.EventInvoiceFailed).Return(nil)

	res, err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.NoError(t, err)
	require.False(t, res.Ignored)
}

func TestSubscriptionService_Webhook_UnknownCustomerAndType(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{
		ID: "evt_5", Type: billing.EventSubscriptionCreated,
		Subscription: &billing.SubscriptionInfo{ID: "sub_9", CustomerID: "cus_unknown"},
	}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_5").Return(false, nil)
	repo.EXPECT().GetCustomerByStripeID(ctx, "cus_unknown").Return(nil, nil)
	repo.EXPECT().RecordEvent(ctx, "evt_5", billing.EventSubscriptionCreated).Return(nil)

	res, err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.NoError(t, err)
	require.True(t, res.Ignored)

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{ID: "evt_6", Type: "charge.refunded"}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_6").Return(false, nil)
	repo.EXPECT().RecordEvent(ctx, "evt_6", "charge.refunded").Return(nil)

	res, err = svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.NoError(t, err)
	require.True(t, res.Ignored)
}

func TestSubscriptionService_Webhook_FailureIsNotRecorded(t *testing.T) {
	svc, repo, provider := newSubscriptionService(t)
	ctx := context.Background()

	provider.EXPECT().ParseEvent(gomock.Any(), "sig").Return(billing.Event{
		ID: "evt_7", Type: billing.EventInvoiceFailed,
		Invoice: &billing.InvoiceInfo{CustomerID: "cus_1"},
	}, nil)
	repo.EXPECT().EventProcessed(ctx, "evt_7").Return(false, nil)
	repo.EXPECT().GetCustomerByStripeID(ctx, "cus_1").Return(nil, errors.New("db locked"))

	_, err := svc.HandleWebhook(ctx, []byte("{}"), "sig")
	require.Error(t, err)
}
