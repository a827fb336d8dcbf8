package ratelimit_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minerals/backend/internal/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Now()} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_FixedWindow(t *testing.T) {
	clock := newFakeClock()
	store := ratelimit.NewMemoryStore(ratelimit.WithClock(clock.Now))
	ctx := context.Background()
	policy := ratelimit.Policy{Name: "test", MaxRequests: 5, Window: time.Minute}

	var firstReset time.Time
	for i := 1; i <= policy.MaxRequests; i++ {
		res, err := store.CheckAndIncrement(ctx, "user:1", policy)
		require.NoError(t, err)
		require.True(t, res.Allowed, "call %d", i)
		require.Equal(t, policy.MaxRequests-i, res.Remaining)
		if i == 1 {
			firstReset = res.ResetTime
			require.Equal(t, clock.Now().Add(time.Minute), firstReset)
		}
		require.Equal(t, firstReset, res.ResetTime)
		clock.Advance(time.Second)
	}

	res, err := store.CheckAndIncrement(ctx, "user:1", policy)
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Zero(t, res.Remaining)
	require.Equal(t, firstReset, res.ResetTime)

	// Reset time itself is still inside the window.
	clock.Advance(firstReset.Sub(clock.Now()))
	res, _ = store.CheckAndIncrement(ctx, "user:1", policy)
	require.False(t, res.Allowed)

	clock.Advance(time.Millisecond)
	res, err = store.CheckAndIncrement(ctx, "user:1", policy)
	require.NoError(t, err)
	require.True(t, res.Allowed)
	require.Equal(t, policy.MaxRequests-1, res.Remaining)
	require.True(t, res.ResetTime.After(firstReset))
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	ctx := context.Background()
	policy := ratelimit.Policy{Name: "test", MaxRequests: 1, Window: time.Hour}

	res, _ := store.CheckAndIncrement(ctx, "user:a", policy)
	require.True(t, res.Allowed)
	res, _ = store.CheckAndIncrement(ctx, "user:a", policy)
	require.False(t, res.Allowed)

	res, _ = store.CheckAndIncrement(ctx, "user:b", policy)
	require.True(t, res.Allowed)
}

func TestMemoryStore_ConcurrentNoLostUpdates(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	ctx := context.Background()
	policy := ratelimit.Policy{Name: "test", MaxRequests: 100, Window: time.Hour}

	const callers = 250
	var allowed atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			res, err := store.CheckAndIncrement(ctx, "user:shared", policy)
			if err != nil {
				t.Error(err)
				return
			}
			if res.Allowed {
				allowed.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int64(policy.MaxRequests), allowed.Load())
}

func TestMemoryStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	store := ratelimit.NewMemoryStore(ratelimit.WithClock(clock.Now))
	ctx := context.Background()
	short := ratelimit.Policy{Name: "short", MaxRequests: 1, Window: time.Second}
	long := ratelimit.Policy{Name: "long", MaxRequests: 1, Window: time.Hour}

	_, _ = store.CheckAndIncrement(ctx, "a", short)
	_, _ = store.CheckAndIncrement(ctx, "b", long)
	require.Equal(t, 2, store.Len())

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	require.Zero(t, removed)

	clock.Advance(2 * time.Second)
	removed, err = store.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Equal(t, 1, store.Len())
}

func TestResult_RetryAfter(t *testing.T) {
	now := time.Now()
	require.Equal(t, 60, ratelimit.Result{ResetTime: now.Add(60 * time.Second)}.RetryAfter(now))
	require.Equal(t, 1, ratelimit.Result{ResetTime: now.Add(10 * time.Millisecond)}.RetryAfter(now))
	require.Equal(t, 0, ratelimit.Result{ResetTime: now.Add(-time.Second)}.RetryAfter(now))
}

func TestKey(t *testing.T) {
	require.Equal(t, "user:u1", ratelimit.Key("u1", "10.0.0.1"))
	require.Equal(t, "ip:10.0.0.1", ratelimit.Key("", "10.0.0.1"))
	require.Equal(t, "ip:unknown", ratelimit.Key("", ""))
	require.Equal(t, "signup:ip:10.0.0.1", ratelimit.StoreKey(ratelimit.Signup, ratelimit.Key("", "10.0.0.1")))
}

func TestPolicies(t *testing.T) {
	require.Equal(t, 60, ratelimit.Authenticated.MaxRequests)
	require.Equal(t, time.Minute, ratelimit.Authenticated.Window)
	require.Equal(t, 100, ratelimit.TaskCreate.MaxRequests)
	require.Equal(t, time.Hour, ratelimit.TaskCreate.Window)
	require.Equal(t, 50, ratelimit.IncomeEntry.MaxRequests)
	require.Equal(t, time.Hour, ratelimit.IncomeEntry.Window)
	require.Equal(t, 5, ratelimit.Signup.MaxRequests)
	require.Equal(t, time.Hour, ratelimit.Signup.Window)
}
