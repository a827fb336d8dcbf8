package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
	"golang.org/x/time/rate"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	ProPriceID    string
	// CallsPerSecond throttles outbound API calls; zero disables throttling.
	CallsPerSecond float64
	// Backends overrides the API endpoint, for tests.
	Backends *stripe.Backends
}

// StripeProvider implements Provider with the Stripe API.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	priceID       string
	limiter       *rate.Limiter
}

func NewStripeProvider(cfg StripeConfig) *StripeProvider {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.CallsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.CallsPerSecond), int(cfg.CallsPerSecond)+1)
	}
	return &StripeProvider{
		api:           client.New(cfg.SecretKey, cfg.Backends),
		webhookSecret: cfg.WebhookSecret,
		priceID:       cfg.ProPriceID,
		limiter:       limiter,
	}
}

func (p *StripeProvider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("stripe throttle: %w", err)
	}
	return nil
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, userID, email, name string) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	params := &stripe.CustomerParams{}
	if email != "" {
		params.Email = stripe.String(email)
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserID, userID)

	customer, err := p.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}
	return customer.ID, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if p.priceID == "" {
		return "", ErrNotConfigured
	}
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(req.CustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(p.priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{MetadataUserID: req.UserID},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserID, req.UserID)

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

func (p *StripeProvider) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	session, err := p.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	return session.URL, nil
}

func (p *StripeProvider) GetSubscription(ctx context.Context, subscriptionID string) (SubscriptionInfo, error) {
	if err := p.wait(ctx); err != nil {
		return SubscriptionInfo{}, err
	}
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := p.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return SubscriptionInfo{}, fmt.Errorf("get subscription %s: %w", subscriptionID, err)
	}
	return subscriptionInfo(sub), nil
}

func (p *StripeProvider) ParseEvent(payload []byte, signature string) (Event, error) {
	if p.webhookSecret == "" {
		return Event{}, ErrNotConfigured
	}
	evt, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return decodeEvent(evt)
}

func decodeEvent(evt stripe.Event) (Event, error) {
	out := Event{ID: evt.ID, Type: string(evt.Type)}
	if evt.Data == nil {
		return out, nil
	}

	switch out.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return Event{}, fmt.Errorf("decode subscription event %s: %w", evt.ID, err)
		}
		info := subscriptionInfo(&sub)
		out.Subscription = &info
	case EventInvoicePaid, EventInvoiceFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(evt.Data.Raw, &inv); err != nil {
			return Event{}, fmt.Errorf("decode invoice event %s: %w", evt.ID, err)
		}
		info := InvoiceInfo{ID: inv.ID}
		if inv.Customer != nil {
			info.CustomerID = inv.Customer.ID
		}
		if inv.Subscription != nil {
			info.SubscriptionID = inv.Subscription.ID
		}
		out.Invoice = &info
	}
	return out, nil
}

func subscriptionInfo(sub *stripe.Subscription) SubscriptionInfo {
	info := SubscriptionInfo{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		UserID:            sub.Metadata[MetadataUserID],
	}
	if sub.Customer != nil {
		info.CustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		info.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}
	return info
}
