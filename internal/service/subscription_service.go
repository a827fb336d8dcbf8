//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"minerals/backend/internal/auth"
	"minerals/backend/internal/billing"
	"minerals/backend/internal/model"
	"minerals/backend/internal/repository"
	"minerals/backend/internal/urlutil"
	"minerals/backend/pkg/logger"
)

type SubscriptionStatus struct {
	IsPro             bool
	Status            string
	Plan              string
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
}

// WebhookResult reports what happened to one delivered event.
type WebhookResult struct {
	EventID   string
	Type      string
	Duplicate bool
	Ignored   bool
}

type SubscriptionService interface {
	Status(ctx context.Context, userID string) (SubscriptionStatus, error)
	IsPro(ctx context.Context, userID string) (bool, error)
	// Checkout returns a hosted checkout URL for the pro plan.
	Checkout(ctx context.Context, id auth.Identity) (string, error)
	// Portal returns a hosted billing portal URL for an existing customer.
	Portal(ctx context.Context, userID string) (string, error)
	// HandleWebhook verifies and applies one provider event. Events already
	// processed are acknowledged without side effects.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookResult, error)
}

type subscriptionService struct {
	repo      repository.BillingRepository
	provider  billing.Provider
	appOrigin string
	customers singleflight.Group
}

// NewSubscriptionService accepts a nil provider; checkout, portal and webhooks
// then fail with ErrBillingUnavailable.
func NewSubscriptionService(repo repository.BillingRepository, provider billing.Provider, appOrigin string) SubscriptionService {
	return &subscriptionService{repo: repo, provider: provider, appOrigin: appOrigin}
}

func (s *subscriptionService) Status(ctx context.Context, userID string) (SubscriptionStatus, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return SubscriptionStatus{}, fmt.Errorf("get subscription: %w", err)
	}
	if sub == nil {
		return SubscriptionStatus{Status: model.StatusFree, Plan: model.PlanFree}, nil
	}
	return SubscriptionStatus{
		IsPro:             sub.IsPro(),
		Status:            sub.Status,
		Plan:              sub.Plan,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}, nil
}

func (s *subscriptionService) IsPro(ctx context.Context, userID string) (bool, error) {
	status, err := s.Status(ctx, userID)
	if err != nil {
		return false, err
	}
	return status.IsPro, nil
}

func (s *subscriptionService) Checkout(ctx context.Context, id auth.Identity) (string, error) {
	if s.provider == nil {
		return "", ErrBillingUnavailable
	}
	status, err := s.Status(ctx, id.ID)
	if err != nil {
		return "", err
	}
	if status.IsPro {
		return "", ErrAlreadySubscribed
	}

	customerID, err := s.customerFor(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.provider.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		CustomerID: customerID,
		UserID:     id.ID,
		SuccessURL: urlutil.Join(s.appOrigin, "/app?upgraded=true"),
		CancelURL:  urlutil.Join(s.appOrigin, "/app?canceled=true"),
	})
	if err != nil {
		return "", s.providerError("checkout", err)
	}
	logger.Info("checkout session created", "module", "service", "action", "create", "resource", "checkout", "result", "ok", "user_id", id.ID)
	return url, nil
}

// customerFor returns the stored Stripe customer or creates one. Concurrent
// calls for the same user share a single provider request.
func (s *subscriptionService) customerFor(ctx context.Context, id auth.Identity) (string, error) {
	v, err, _ := s.customers.Do(id.ID, func() (interface{}, error) {
		existing, err := s.repo.GetCustomerByUser(ctx, id.ID)
		if err != nil {
			return "", fmt.Errorf("get customer: %w", err)
		}
		if existing != nil {
			return existing.StripeCustomerID, nil
		}

		customerID, err := s.provider.CreateCustomer(ctx, id.ID, id.Email, id.Name)
		if err != nil {
			return "", s.providerError("create customer", err)
		}
		if _, err := s.repo.CreateCustomer(ctx, id.ID, customerID); err != nil {
			return "", fmt.Errorf("save customer: %w", err)
		}
		return customerID, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *subscriptionService) Portal(ctx context.Context, userID string) (string, error) {
	if s.provider == nil {
		return "", ErrBillingUnavailable
	}
	customer, err := s.repo.GetCustomerByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return "", ErrNotFound
	}
	url, err := s.provider.CreatePortalSession(ctx, customer.StripeCustomerID, urlutil.Join(s.appOrigin, "/app"))
	if err != nil {
		return "", s.providerError("portal", err)
	}
	return url, nil
}

func (s *subscriptionService) providerError(action string, err error) error {
	if errors.Is(err, billing.ErrNotConfigured) {
		return ErrBillingUnavailable
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (s *subscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	if s.provider == nil {
		return WebhookResult{}, ErrBillingUnavailable
	}
	if signature == "" {
		return WebhookResult{}, fmt.Errorf("%w: missing signature", ErrInvalid)
	}
	evt, err := s.provider.ParseEvent(payload, signature)
	if err != nil {
		if errors.Is(err, billing.ErrNotConfigured) {
			return WebhookResult{}, ErrBillingUnavailable
		}
		if errors.Is(err, billing.ErrInvalidSignature) {
			return WebhookResult{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return WebhookResult{}, fmt.Errorf("parse event: %w", err)
	}

	result := WebhookResult{EventID: evt.ID, Type: evt.Type}
	seen, err := s.repo.EventProcessed(ctx, evt.ID)
	if err != nil {
		return result, fmt.Errorf("check event: %w", err)
	}
	if seen {
		result.Duplicate = true
		return result, nil
	}

	handled, err := s.applyEvent(ctx, evt)
	if err != nil {
		return result, err
	}
	result.Ignored = !handled

	if err := s.repo.RecordEvent(ctx, evt.ID, evt.Type); err != nil {
		return result, fmt.Errorf("record event: %w", err)
	}
	return result, nil
}

// applyEvent reports false for event types or customers the app does not track.
func (s *subscriptionService) applyEvent(ctx context.Context, evt billing.Event) (bool, error) {
	switch evt.Type {
	case billing.EventSubscriptionCreated, billing.EventSubscriptionUpdated:
		if evt.Subscription == nil {
			return false, nil
		}
		userID, err := s.userForCustomer(ctx, evt.Subscription.CustomerID)
		if err != nil || userID == "" {
			return false, err
		}
		sub := model.Subscription{
			UserID:               userID,
			StripeSubscriptionID: evt.Subscription.ID,
			Status:               evt.Subscription.Status,
			Plan:                 model.PlanPro,
			CancelAtPeriodEnd:    evt.Subscription.CancelAtPeriodEnd,
		}
		if !evt.Subscription.CurrentPeriodEnd.IsZero() {
			end := evt.Subscription.CurrentPeriodEnd
			sub.CurrentPeriodEnd = &end
		}
		if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
			return false, fmt.Errorf("upsert subscription: %w", err)
		}
		logger.Info("subscription updated", "module", "service", "action", "update", "resource", "subscription", "result", "ok", "user_id", userID, "status", sub.Status)
		return true, nil

	case billing.EventSubscriptionDeleted:
		if evt.Subscription == nil {
			return false, nil
		}
		userID, err := s.userForCustomer(ctx, evt.Subscription.CustomerID)
		if err != nil || userID == "" {
			return false, err
		}
		current, err := s.repo.GetSubscription(ctx, userID)
		if err != nil {
			return false, fmt.Errorf("get subscription: %w", err)
		}
		if current == nil {
			return false, nil
		}
		current.Status = model.StatusCanceled
		current.CancelAtPeriodEnd = false
		if err := s.repo.UpsertSubscription(ctx, *current); err != nil {
			return false, fmt.Errorf("cancel subscription: %w", err)
		}
		return true, nil

	case billing.EventInvoicePaid:
		if evt.Invoice == nil || evt.Invoice.SubscriptionID == "" {
			return false, nil
		}
		userID, err := s.userForCustomer(ctx, evt.Invoice.CustomerID)
		if err != nil || userID == "" {
			return false, err
		}
		current, err := s.repo.GetSubscription(ctx, userID)
		if err != nil {
			return false, fmt.Errorf("get subscription: %w", err)
		}
		if current == nil {
			return false, nil
		}
		remote, err := s.provider.GetSubscription(ctx, evt.Invoice.SubscriptionID)
		if err != nil {
			return false, fmt.Errorf("refresh subscription: %w", err)
		}
		current.Status = remote.Status
		if !remote.CurrentPeriodEnd.IsZero() {
			end := remote.CurrentPeriodEnd
			current.CurrentPeriodEnd = &end
		}
		if err := s.repo.UpsertSubscription(ctx, *current); err != nil {
			return false, fmt.Errorf("refresh subscription: %w", err)
		}
		return true, nil

	case billing.EventInvoiceFailed:
		if evt.Invoice == nil {
			return false, nil
		}
		userID, err := s.userForCustomer(ctx, evt.Invoice.CustomerID)
		if err != nil || userID == "" {
			return false, err
		}
		if err := s.repo.UpdateSubscriptionStatus(ctx, userID, model.StatusPastDue); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, fmt.Errorf("mark past due: %w", err)
		}
		return true, nil
	}

	logger.Debug("webhook event ignored", "module", "service", "action", "webhook", "resource", "billing_event", "result", "skipped", "type", evt.Type)
	return false, nil
}

func (s *subscriptionService) userForCustomer(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", nil
	}
	customer, err := s.repo.GetCustomerByStripeID(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		logger.Warn("webhook for unknown customer", "module", "service", "action", "webhook", "resource", "billing_event", "result", "skipped", "customer_id", customerID)
		return "", nil
	}
	return customer.UserID, nil
}
