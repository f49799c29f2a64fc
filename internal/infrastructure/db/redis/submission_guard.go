package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keySubmitPrefix = "submit:"

	// A reservation outlives any realistic carrier round trip but expires on
	// its own, so a crash mid-submission never locks an order forever.
	defaultGuardTTL = 10 * time.Minute
)

// SubmissionGuard reserves an order id for the duration of a submission via
// SET NX, so two operators cannot submit the same order concurrently.
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSubmissionGuard(client *redis.Client, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &SubmissionGuard{client: client, ttl: ttl}
}

// Acquire reserves the order. ok=false means another submission holds it.
func (g *SubmissionGuard) Acquire(ctx context.Context, orderID string) (bool, error) {
	return g.client.SetNX(ctx, keySubmitPrefix+orderID, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
}

// Release frees the reservation after a failed submission.
func (g *SubmissionGuard) Release(ctx context.Context, orderID string) error {
	return g.client.Del(ctx, keySubmitPrefix+orderID).Err()
}
