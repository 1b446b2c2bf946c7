package tokens

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCounterStore_Sequential(t *testing.T) {
	store := NewMemoryCounterStore()
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for want := int64(1); want <= 5; want++ {
		got, err := store.Next(context.Background(), "Central Medical Center", day)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMemoryCounterStore_ConcurrentUniqueness(t *testing.T) {
	const n = 200

	store := NewMemoryCounterStore()
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make([]int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := store.Next(context.Background(), "City General Hospital", day)
			require.NoError(t, err)
			results[i] = got
		}(i)
	}
	wg.Wait()

	// N concurrent callers must get exactly {1..N}: no duplicates, no gaps.
	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	for i, got := range results {
		assert.Equal(t, int64(i+1), got)
	}
}

func TestMemoryCounterStore_FacilityIndependence(t *testing.T) {
	store := NewMemoryCounterStore()
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := store.Next(context.Background(), "Hospital A", day)
		require.NoError(t, err)
	}

	got, err := store.Next(context.Background(), "Hospital B", day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "facility B must start at 1 regardless of facility A")
}

func TestMemoryCounterStore_DayScoped(t *testing.T) {
	store := NewMemoryCounterStore()
	monday := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	tuesday := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	first, err := store.Next(context.Background(), "Hospital 1", monday)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	nextDay, err := store.Next(context.Background(), "Hospital 1", tuesday)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nextDay, "counter must reset per calendar day")
}

// racyCounterStore reproduces the read-then-write counter this service
// replaced: it reads the last value, yields, then writes value+1. The
// barrier in the test forces both callers to read before either writes,
// which is exactly the interleaving a loaded server produces.
type racyCounterStore struct {
	mu        sync.Mutex
	counters  map[string]int64
	afterRead func()
}

func (s *racyCounterStore) Next(ctx context.Context, facility string, day time.Time) (int64, error) {
	key := facility + ":" + DayKey(day)

	s.mu.Lock()
	last := s.counters[key]
	s.mu.Unlock()

	if s.afterRead != nil {
		s.afterRead()
	}

	next := last + 1
	s.mu.Lock()
	s.counters[key] = next
	s.mu.Unlock()
	return next, nil
}

func TestRacyCounterStore_LosesUpdates(t *testing.T) {
	var barrier sync.WaitGroup
	barrier.Add(2)

	store := &racyCounterStore{
		counters: make(map[string]int64),
		afterRead: func() {
			// Both callers observe the same "last" value before either
			// writes.
			barrier.Done()
			barrier.Wait()
		},
	}
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	results := make(chan int64, 2)
	for i := 0; i < 2; i++ {
		go func() {
			got, err := store.Next(context.Background(), "Hospital 1", day)
			require.NoError(t, err)
			results <- got
		}()
	}

	first := <-results
	second := <-results
	assert.Equal(t, first, second,
		"read-then-write hands the same ticket to both callers; the atomic stores must never be swapped for this")
}
