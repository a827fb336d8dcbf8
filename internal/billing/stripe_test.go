package billing_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"minerals/backend/internal/billing"
)

const whsec = "whsec_test"

func signed(t *testing.T, payload string) (body []byte, header string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    whsec,
		Timestamp: time.Now(),
	})
	return sp.Payload, sp.Header
}

func TestStripeProvider_ParseEvent_Subscription(t *testing.T) {
	p := billing.NewStripeProvider(billing.StripeConfig{WebhookSecret: whsec})

	body, header := signed(t, `{
		"id": "evt_sub",
		"object": "event",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"object": "subscription",
			"status": "active",
			"customer": "cus_1",
			"current_period_end": 1735689600,
			"cancel_at_period_end": true,
			"metadata": {"userId": "user_1"}
		}}
	}`)

	evt, err := p.ParseEvent(body, header)
	require.NoError(t, err)
	require.Equal(t, "evt_sub", evt.ID)
	require.Equal(t, billing.EventSubscriptionUpdated, evt.Type)
	require.Nil(t, evt.Invoice)
	require.NotNil(t, evt.Subscription)
	require.Equal(t, billing.SubscriptionInfo{
		ID:                "sub_1",
		CustomerID:        "cus_1",
		Status:            "active",
		CurrentPeriodEnd:  time.Unix(1735689600, 0).UTC(),
		CancelAtPeriodEnd: true,
		UserID:            "user_1",
	}, *evt.Subscription)
}

func TestStripeProvider_ParseEvent_Invoice(t *testing.T) {
	p := billing.NewStripeProvider(billing.StripeConfig{WebhookSecret: whsec})

	body, header := signed(t, `{
		"id": "evt_inv",
		"object": "event",
		"type": "invoice.payment_failed",
		"data": {"object": {"id": "in_1", "object": "invoice", "customer": "cus_1", "subscription": "sub_1"}}
	}`)

	evt, err := p.ParseEvent(body, header)
	require.NoError(t, err)
	require.Nil(t, evt.Subscription)
	require.Equal(t, &billing.InvoiceInfo{ID: "in_1", CustomerID: "cus_1", SubscriptionID: "sub_1"}, evt.Invoice)
}

func TestStripeProvider_ParseEvent_UnknownType(t *testing.T) {
	p := billing.NewStripeProvider(billing.StripeConfig{WebhookSecret: whsec})

	body, header := signed(t, `{"id": "evt_x", "object": "event", "type": "charge.refunded", "data": {"object": {"id": "ch_1"}}}`)
	evt, err := p.ParseEvent(body, header)
	require.NoError(t, err)
	require.Equal(t, "charge.refunded", evt.Type)
	require.Nil(t, evt.Subscription)
	require.Nil(t, evt.Invoice)
}

func TestStripeProvider_ParseEvent_BadSignature(t *testing.T) {
	p := billing.NewStripeProvider(billing.StripeConfig{WebhookSecret: whsec})
	body, _ := signed(t, `{"id": "evt_1", "object": "event", "type": "invoice.payment_failed"}`)

	_, err := p.ParseEvent(body, "t=1,v1=deadbeef")
	require.ErrorIs(t, err, billing.ErrInvalidSignature)

	unconfigured := billing.NewStripeProvider(billing.StripeConfig{})
	_, err = unconfigured.ParseEvent(body, "t=1,v1=deadbeef")
	require.ErrorIs(t, err, billing.ErrNotConfigured)
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) *stripe.Backends {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
}

func TestStripeProvider_CreateCustomer(t *testing.T) {
	var form url.Values
	backends := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/customers", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(raw))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "cus_new", "object": "customer"})
	})

	p := billing.NewStripeProvider(billing.StripeConfig{SecretKey: "sk_test_x", Backends: backends, CallsPerSecond: 5})
	id, err := p.CreateCustomer(context.Background(), "user_1", "ada@example.com", "Ada")
	require.NoError(t, err)
	require.Equal(t, "cus_new", id)
	require.Equal(t, "ada@example.com", form.Get("email"))
	require.Equal(t, "Ada", form.Get("name"))
	require.Equal(t, "user_1", form.Get("metadata[userId]"))
}

func TestStripeProvider_CreateCheckoutSession(t *testing.T) {
	backends := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(raw))
		assert.Equal(t, "subscription", form.Get("mode"))
		assert.Equal(t, "price_pro", form.Get("line_items[0][price]"))
		assert.Equal(t, "user_1", form.Get("subscription_data[metadata][userId]"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "cs_1", "object": "checkout.session", "url": "https://checkout.stripe.test/cs_1",
		})
	})

	p := billing.NewStripeProvider(billing.StripeConfig{SecretKey: "sk_test_x", ProPriceID: "price_pro", Backends: backends})
	link, err := p.CreateCheckoutSession(context.Background(), billing.CheckoutRequest{
		CustomerID: "cus_1", UserID: "user_1",
		SuccessURL: "http://localhost:3000/?success=true", CancelURL: "http://localhost:3000/?canceled=true",
	})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.stripe.test/cs_1", link)

	noPrice := billing.NewStripeProvider(billing.StripeConfig{SecretKey: "sk_test_x", Backends: backends})
	_, err = noPrice.CreateCheckoutSession(context.Background(), billing.CheckoutRequest{CustomerID: "cus_1"})
	require.ErrorIs(t, err, billing.ErrNotConfigured)
}

func TestStripeProvider_APIError(t *testing.T) {
	backends := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No such subscription"}}`))
	})

	p := billing.NewStripeProvider(billing.StripeConfig{SecretKey: "sk_test_x", Backends: backends})
	_, err := p.GetSubscription(context.Background(), "sub_missing")
	require.Error(t, err)

	var stripeErr *stripe.Error
	require.ErrorAs(t, err, &stripeErr)
	require.Equal(t, http.StatusNotFound, stripeErr.HTTPStatusCode)
}
