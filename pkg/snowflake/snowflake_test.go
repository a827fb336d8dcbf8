package snowflake

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Init mutates package state, so these tests do not run in parallel.
func TestInit_NodeRange(t *testing.T) {
	require.NoError(t, Init(1))
	require.Error(t, Init(-1))
	require.Error(t, Init(1024))
	require.NoError(t, Init(0))
}

func TestNextID_MonotonicAndPositive(t *testing.T) {
	require.NoError(t, Init(0))

	prev := NextID()
	require.Positive(t, prev)
	for i := 0; i < 1000; i++ {
		id := NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestNextID_ConcurrentUnique(t *testing.T) {
	require.NoError(t, Init(0))

	const workers, perWorker = 8, 500
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]struct{}, workers*perWorker)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, NextID())
			}
			mu.Lock()
			for _, id := range local {
				ids[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, ids, workers*perWorker)
}
