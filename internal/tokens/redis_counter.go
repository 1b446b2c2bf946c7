package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	counterKeyPrefix = "medq:tokens:counter:"

	// Counters are day-scoped; 48h covers timezone skew between the issuing
	// server and Redis before the key is garbage-collected.
	counterTTL = 48 * time.Hour

	counterOpTimeout = 3 * time.Second
)

// RedisCounterStore issues ticket numbers through Redis INCR. INCR is
// atomic on the server, which is the whole point: there is no separate
// read-then-write for two concurrent submissions to interleave.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Next(ctx context.Context, facility string, day time.Time) (int64, error) {
	if s.client == nil {
		return 0, ErrCounterUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, counterOpTimeout)
	defer cancel()

	key := counterKey(facility, day)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// No-op after the first ticket of the day; keeps stale day keys from
	// accumulating.
	pipe.ExpireNX(ctx, key, counterTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCounterUnavailable, err)
	}

	return incr.Val(), nil
}

func counterKey(facility string, day time.Time) string {
	return counterKeyPrefix + facility + ":" + DayKey(day)
}
