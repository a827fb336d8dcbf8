package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"minerals/backend/internal/model"
	"minerals/backend/internal/repository"
	"minerals/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestBillingRepository_Customers(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "user_1")
	repo := repository.NewBillingRepository(db)
	ctx := context.Background()

	c, err := repo.GetCustomerByUser(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, c)

	_, err = repo.CreateCustomer(ctx, userID, "cus_123")
	require.NoError(t, err)

	c, err = repo.GetCustomerByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "cus_123", c.StripeCustomerID)

	c, err = repo.GetCustomerByStripeID(ctx, "cus_123")
	require.NoError(t, err)
	require.Equal(t, userID, c.UserID)

	_, err = repo.CreateCustomer(ctx, userID, "cus_456")
	require.Error(t, err)
}

func TestBillingRepository_Subscriptions(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "user_1")
	repo := repository.NewBillingRepository(db)
	ctx := context.Background()

	sub, err := repo.GetSubscription(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, sub)
	require.ErrorIs(t, repo.UpdateSubscriptionStatus(ctx, userID, model.StatusPastDue), sql.ErrNoRows)

	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertSubscription(ctx, model.Subscription{
		UserID: userID, StripeSubscriptionID: "sub_1", Status: model.StatusActive, Plan: model.PlanPro,
		CurrentPeriodEnd: &end,
	}))

	sub, err = repo.GetSubscription(ctx, userID)
	require.NoError(t, err)
	require.True(t, sub.IsPro())
	require.True(t, sub.CurrentPeriodEnd.Equal(end))
	require.False(t, sub.CancelAtPeriodEnd)

	require.NoError(t, repo.UpsertSubscription(ctx, model.Subscription{
		UserID: userID, StripeSubscriptionID: "sub_1", Status: model.StatusActive, Plan: model.PlanPro,
		CancelAtPeriodEnd: true,
	}))
	require.NoError(t, repo.UpdateSubscriptionStatus(ctx, userID, model.StatusPastDue))

	sub, err = repo.GetSubscription(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, model.StatusPastDue, sub.Status)
	require.True(t, sub.CancelAtPeriodEnd)
	require.Nil(t, sub.CurrentPeriodEnd)
	require.False(t, sub.IsPro())
}

func TestBillingRepository_Events(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewBillingRepository(db)
	ctx := context.Background()

	seen, err := repo.EventProcessed(ctx, "evt_1")
	require.NoError(t, err)
	require.False(t, seen)

	require.NoError(t, repo.RecordEvent(ctx, "evt_1", "invoice.payment_failed"))
	require.NoError(t, repo.RecordEvent(ctx, "evt_1", "invoice.payment_failed"))

	seen, err = repo.EventProcessed(ctx, "evt_1")
	require.NoError(t, err)
	require.True(t, seen)
}
