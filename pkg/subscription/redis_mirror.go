package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// usageKeyPrefix namespaces the mirror's hash keys.
const usageKeyPrefix = "crm:usage:"

// mirrorFields maps the mirrored features to their snapshot field names.
// Leads mirrors into a monthly field even though the authoritative
// counter is cumulative; the reset job clears the whole snapshot.
var mirrorFields = map[plan.Feature]string{
	plan.FeatureLeads:    "leads_created_this_month",
	plan.FeatureAI:       "ai_requests_this_month",
	plan.FeatureScraping: "scraping_requests_this_month",
}

// RedisMirror keeps the per-user usage snapshot in Redis hashes for
// quick dashboard reads without touching the subscription store. It
// satisfies UsageMirror; Snapshot is the read side dashboards use.
type RedisMirror struct {
	client redis.UniversalClient
}

// NewRedisMirror creates a usage mirror backed by Redis.
func NewRedisMirror(client redis.UniversalClient) *RedisMirror {
	return &RedisMirror{client: client}
}

func (m *RedisMirror) Set(ctx context.Context, userID uuid.UUID, f plan.Feature, value int64) error {
	field, ok := mirrorFields[f]
	if !ok {
		return ErrNotMetered
	}
	if err := m.client.HSet(ctx, usageKey(userID), field, value).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Snapshot returns the mirrored counters for a user. Missing fields
// read as zero; the snapshot is display-only and may lag the store.
func (m *RedisMirror) Snapshot(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	raw, err := m.client.HGetAll(ctx, usageKey(userID)).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	snapshot := make(map[string]int64, len(mirrorFields))
	for _, field := range mirrorFields {
		snapshot[field] = 0
	}
	for field, v := range raw {
		var n int64
		if _, err := fmt.Sscan(v, &n); err == nil {
			snapshot[field] = n
		}
	}
	return snapshot, nil
}

func (m *RedisMirror) Reset(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := m.client.Scan(ctx, cursor, usageKeyPrefix+"*", 100).Result()
		if err != nil {
			return errors.Join(ErrStoreUnavailable, err)
		}
		if len(keys) > 0 {
			if err := m.client.Del(ctx, keys...).Err(); err != nil {
				return errors.Join(ErrStoreUnavailable, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func usageKey(userID uuid.UUID) string {
	return usageKeyPrefix + userID.String()
}
