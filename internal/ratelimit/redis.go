package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:complaints:"

// RedisLimiter keeps the sliding window in a Redis sorted set per key, scored
// by hit time. Multiple instances pointed at the same Redis share one limit.
type RedisLimiter struct {
	rdb    *redis.Client
	window time.Duration
	max    int
}

func NewRedis(rdb *redis.Client, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, window: window, max: max}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	rkey := redisKeyPrefix + key
	now := time.Now()
	cutoff := now.Add(-l.window)

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	card := pipe.ZCard(ctx, rkey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if card.Val() >= int64(l.max) {
		return false, nil
	}

	// Member must be unique per hit; two hits in the same nanosecond would
	// otherwise collapse into one sorted-set entry.
	member := strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.NewString()

	pipe = l.rdb.TxPipeline()
	pipe.ZAdd(ctx, rkey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, rkey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return true, nil
}
