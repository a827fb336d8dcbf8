//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package billing

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrNotConfigured    = errors.New("billing not configured")
)

const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaid         = "invoice.payment_succeeded"
	EventInvoiceFailed       = "invoice.payment_failed"
)

// MetadataUserID is the customer and subscription metadata key holding the user id.
const MetadataUserID = "userId"

type CheckoutRequest struct {
	CustomerID string
	UserID     string
	SuccessURL string
	CancelURL  string
}

type SubscriptionInfo struct {
	ID                string
	CustomerID        string
	Status            string
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
	UserID            string
}

type InvoiceInfo struct {
	ID             string
	CustomerID     string
	SubscriptionID string
}

// Event is a verified webhook event. Exactly one of Subscription and Invoice is
// set for the event types the app handles; both are nil for other types.
type Event struct {
	ID           string
	Type         string
	Subscription *SubscriptionInfo
	Invoice      *InvoiceInfo
}

// Provider is the payment provider used for checkout and subscription state.
type Provider interface {
	CreateCustomer(ctx context.Context, userID, email, name string) (string, error)
	// CreateCheckoutSession returns the hosted checkout URL.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
	// CreatePortalSession returns the hosted billing portal URL.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	GetSubscription(ctx context.Context, subscriptionID string) (SubscriptionInfo, error)
	ParseEvent(payload []byte, signature string) (Event, error)
}
