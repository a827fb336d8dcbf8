package model

import "time"

const (
	PlanFree = "free"
	PlanPro  = "pro"

	StatusFree     = "free"
	StatusActive   = "active"
	StatusTrialing = "trialing"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
)

type StripeCustomer struct {
	UserID           string
	StripeCustomerID string
	CreatedAt        time.Time
}

type Subscription struct {
	UserID               string
	StripeSubscriptionID string
	Status               string
	Plan                 string
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
	UpdatedAt            time.Time
}

// IsPro reports whether the subscription grants pro features.
func (s *Subscription) IsPro() bool {
	if s == nil {
		return false
	}
	return s.Plan == PlanPro && (s.Status == StatusActive || s.Status == StatusTrialing)
}
