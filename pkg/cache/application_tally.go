package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// TallyKey is the Redis hash holding submission counts keyed by course label.
	TallyKey = "admissions:applications_by_course"

	// tallySeenTTL bounds how long a processed event id is remembered for deduplication.
	tallySeenTTL    = 7 * 24 * time.Hour
	tallySeenPrefix = "admissions:tally:seen"
)

// countOnce increments the course counter and records the event id in one
// atomic step. The counter is written before the marker, so a failed
// HINCRBY leaves no marker behind and a redelivery is counted.
//
// KEYS[1] seen marker, KEYS[2] tally hash. ARGV[1] course, ARGV[2] marker TTL in seconds.
var countOnce = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HINCRBY', KEYS[2], ARGV[1], 1)
redis.call('SET', KEYS[1], 1, 'EX', ARGV[2])
return 1
`)

// ApplicationTally is the per-course submission counter fed by the worker.
// Course labels are free text and counted exactly as submitted.
type ApplicationTally struct {
	client *RedisClient
}

// NewApplicationTally creates an ApplicationTally backed by the given RedisClient.
func NewApplicationTally(r *RedisClient) *ApplicationTally {
	return &ApplicationTally{client: r}
}

// Increment counts one submission for course. Redelivered events carrying the
// same eventID are counted once; the return value reports whether this call
// changed the tally.
func (t *ApplicationTally) Increment(ctx context.Context, eventID uuid.UUID, course string) (bool, error) {
	keys := []string{t.seenKey(eventID), TallyKey}
	n, err := countOnce.Run(ctx, t.client.Client(), keys, course, int64(tallySeenTTL/time.Second)).Int64()
	if err != nil {
		return false, fmt.Errorf("tally increment: %w", err)
	}
	return n == 1, nil
}

// Counts returns the current tally. An empty map means nothing has been counted yet.
func (t *ApplicationTally) Counts(ctx context.Context) (map[string]int64, error) {
	vals, err := t.client.Client().HGetAll(ctx, TallyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("tally read: %w", err)
	}

	counts := make(map[string]int64, len(vals))
	for course, raw := range vals {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tally parse %q: %w", course, err)
		}
		counts[course] = n
	}
	return counts, nil
}

func (t *ApplicationTally) seenKey(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", tallySeenPrefix, eventID)
}
