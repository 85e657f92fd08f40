package mailbox

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// seenTTL is how long a processed message id stays in the filter.
	// The database unique index on message_id is the real idempotency
	// guard; this just avoids re-running extraction on poll overlap.
	seenTTL = 72 * time.Hour

	seenKeyPrefix = "alfies:mail:seen:"
)

// ProcessedFilter remembers which message ids have already been handed to
// the pipeline, backed by Redis.
type ProcessedFilter struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProcessedFilter creates a Redis-backed seen-message filter
func NewProcessedFilter(rdb *redis.Client) *ProcessedFilter {
	return &ProcessedFilter{rdb: rdb, ttl: seenTTL}
}

// IsNew returns true if the message id has not been seen before. When true
// the id is marked seen atomically (SETNX), so concurrent pollers cannot
// both claim it.
func (f *ProcessedFilter) IsNew(ctx context.Context, messageID string) (bool, error) {
	key := seenKeyPrefix + messageID

	set, err := f.rdb.SetNX(ctx, key, 1, f.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup SETNX: %w", err)
	}
	return set, nil
}

// Forget removes a message id from the filter so a later poll retries it.
// Used when the pipeline fails before reaching the database claim.
func (f *ProcessedFilter) Forget(ctx context.Context, messageID string) {
	f.rdb.Del(ctx, seenKeyPrefix+messageID)
}
