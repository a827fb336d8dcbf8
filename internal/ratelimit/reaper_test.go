package ratelimit_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minerals/backend/internal/ratelimit"
)

func TestReaper_SweepsExpiredWindows(t *testing.T) {
	clock := newFakeClock()
	store := ratelimit.NewMemoryStore(ratelimit.WithClock(clock.Now))
	policy := ratelimit.Policy{Name: "test", MaxRequests: 1, Window: time.Second}

	for _, key := range []string{"a", "b", "c"} {
		_, err := store.CheckAndIncrement(context.Background(), key, policy)
		require.NoError(t, err)
	}
	clock.Advance(2 * time.Second)

	var swept atomic.Int64
	reaper := ratelimit.NewReaper(store, 10*time.Millisecond, func(removed int) {
		swept.Add(int64(removed))
	})
	reaper.Start()
	defer reaper.Stop()

	require.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return swept.Load() == 3 }, time.Second, 5*time.Millisecond)
}
