package tokens

import (
	"context"
	"sync"
	"time"
)

// CounterStore hands out ticket numbers. Next must behave as an atomic
// get-and-increment per (facility, day): two concurrent callers for the
// same facility never receive the same number, and the numbers issued form
// {1..N} with no gaps. The first ticket of a facility's day is 1.
type CounterStore interface {
	Next(ctx context.Context, facility string, day time.Time) (int64, error)
}

// DayKey normalizes a timestamp to the calendar-day bucket counters are
// scoped by.
func DayKey(day time.Time) string {
	return day.Format("2006-01-02")
}

// MemoryCounterStore is a mutex-guarded in-process counter. It satisfies
// the atomicity contract for single-process deployments and tests; the
// Redis store is the one used in production.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{counters: make(map[string]int64)}
}

func (s *MemoryCounterStore) Next(ctx context.Context, facility string, day time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, ErrCounterUnavailable
	}

	key := facility + ":" + DayKey(day)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}
