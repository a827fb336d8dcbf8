//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"minerals/backend/internal/model"
)

// BillingRepository maps users to Stripe customers, stores the subscription
// state mirrored from webhooks and remembers processed webhook event ids.
type BillingRepository interface {
	GetCustomerByUser(ctx context.Context, userID string) (*model.StripeCustomer, error)
	GetCustomerByStripeID(ctx context.Context, stripeCustomerID string) (*model.StripeCustomer, error)
	CreateCustomer(ctx context.Context, userID, stripeCustomerID string) (*model.StripeCustomer, error)

	GetSubscription(ctx context.Context, userID string) (*model.Subscription, error)
	UpsertSubscription(ctx context.Context, sub model.Subscription) error
	UpdateSubscriptionStatus(ctx context.Context, userID, status string) error

	EventProcessed(ctx context.Context, eventID string) (bool, error)
	RecordEvent(ctx context.Context, eventID, eventType string) error
}

type billingRepository struct {
	db dbtx
}

func NewBillingRepository(db *sql.DB) BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) GetCustomerByUser(ctx context.Context, userID string) (*model.StripeCustomer, error) {
	return r.getCustomer(ctx, `user_id = ?`, userID)
}

func (r *billingRepository) GetCustomerByStripeID(ctx context.Context, stripeCustomerID string) (*model.StripeCustomer, error) {
	return r.getCustomer(ctx, `stripe_customer_id = ?`, stripeCustomerID)
}

func (r *billingRepository) getCustomer(ctx context.Context, where string, arg string) (*model.StripeCustomer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, stripe_customer_id, created_at FROM stripe_customers WHERE `+where, arg)

	var c model.StripeCustomer
	var createdAt string
	if err := row.Scan(&c.UserID, &c.StripeCustomerID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.CreatedAt, _ = parseTime(createdAt)
	return &c, nil
}

func (r *billingRepository) CreateCustomer(ctx context.Context, userID, stripeCustomerID string) (*model.StripeCustomer, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stripe_customers (user_id, stripe_customer_id, created_at) VALUES (?, ?, ?)
	`, userID, stripeCustomerID, formatTime(now))
	if err != nil {
		return nil, err
	}
	return &model.StripeCustomer{UserID: userID, StripeCustomerID: stripeCustomerID, CreatedAt: now}, nil
}

func (r *billingRepository) GetSubscription(ctx context.Context, userID string) (*model.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, stripe_subscription_id, status, plan, current_period_end, cancel_at_period_end, updated_at
		FROM subscriptions WHERE user_id = ?
	`, userID)

	var s model.Subscription
	var periodEnd sql.NullString
	var cancel int
	var updatedAt string
	if err := row.Scan(&s.UserID, &s.StripeSubscriptionID, &s.Status, &s.Plan, &periodEnd, &cancel, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if periodEnd.Valid {
		if t, err := parseTime(periodEnd.String); err == nil {
			s.CurrentPeriodEnd = &t
		}
	}
	s.CancelAtPeriodEnd = cancel == 1
	s.UpdatedAt, _ = parseTime(updatedAt)
	return &s, nil
}

func (r *billingRepository) UpsertSubscription(ctx context.Context, sub model.Subscription) error {
	var periodEnd interface{}
	if sub.CurrentPeriodEnd != nil {
		periodEnd = formatTime(*sub.CurrentPeriodEnd)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, stripe_subscription_id, status, plan, current_period_end, cancel_at_period_end, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			stripe_subscription_id = excluded.stripe_subscription_id,
			status = excluded.status,
			plan = excluded.plan,
			current_period_end = excluded.current_period_end,
			cancel_at_period_end = excluded.cancel_at_period_end,
			updated_at = excluded.updated_at
	`, sub.UserID, sub.StripeSubscriptionID, sub.Status, sub.Plan, periodEnd, boolToInt(sub.CancelAtPeriodEnd),
		formatTime(time.Now()))
	return err
}

func (r *billingRepository) UpdateSubscriptionStatus(ctx context.Context, userID, status string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = ?, updated_at = ? WHERE user_id = ?
	`, status, formatTime(time.Now()), userID)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

func (r *billingRepository) EventProcessed(ctx context.Context, eventID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM billing_events WHERE id = ?`, eventID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *billingRepository) RecordEvent(ctx context.Context, eventID, eventType string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO billing_events (id, type, processed_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, eventID, eventType, formatTime(time.Now()))
	return err
}
