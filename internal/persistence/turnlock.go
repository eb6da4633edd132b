package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TurnLock serializes conversation turns per ticket. A turn normally runs
// request/response, one at a time; the lock only guards against accidental
// double submission racing the single-primary-assignment invariant.
type TurnLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTurnLock builds a lock helper over the shared Redis client.
func NewTurnLock(r *Redis, ttl time.Duration) *TurnLock {
	if r == nil {
		return &TurnLock{ttl: ttl}
	}
	return &TurnLock{client: r.Client, ttl: ttl}
}

// Acquire takes the lock for a ticket. It returns false when another turn
// is already in flight. Without a Redis client it always succeeds, keeping
// single-instance deployments working.
func (l *TurnLock) Acquire(ctx context.Context, ticketID string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}
	return l.client.SetNX(ctx, lockKey(ticketID), "1", l.ttl).Result()
}

// Release frees the lock for a ticket.
func (l *TurnLock) Release(ctx context.Context, ticketID string) {
	if l == nil || l.client == nil {
		return
	}
	_ = l.client.Del(ctx, lockKey(ticketID)).Err()
}

func lockKey(ticketID string) string {
	return "resolution:turn:" + ticketID
}
