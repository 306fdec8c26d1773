package cost

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Retention horizon for raw usage records and their day summaries.
const retentionTTL = 90 * 24 * time.Hour

// RedisStore persists usage records in Redis. Raw records go to day/week/month
// lists; the per-day summary hash is maintained with atomic increments.
type RedisStore struct {
	client *redis.Client
	prefix string // e.g. "openai:cost"
}

// NewRedisStore creates a Redis-backed usage store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

var _ Store = (*RedisStore)(nil)

// Record appends the raw record under its three bucket keys and bumps the
// daily summary counters. HINCRBY/HINCRBYFLOAT keep concurrent writers from
// losing updates.
func (s *RedisStore) Record(ctx context.Context, rec UsageRecord) error {
	t := time.Unix(rec.Timestamp, 0).UTC()

	dailyKey := fmt.Sprintf("%s:daily:%s", s.prefix, DayKey(t))
	weeklyKey := fmt.Sprintf("%s:weekly:%s", s.prefix, WeekKey(t))
	monthlyKey := fmt.Sprintf("%s:monthly:%s", s.prefix, MonthKey(t))

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cost: marshal record: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, key := range []string{dailyKey, weeklyKey, monthlyKey} {
		pipe.LPush(ctx, key, raw)
		pipe.Expire(ctx, key, retentionTTL)
	}

	summaryKey := dailyKey + ":summary"
	pipe.HIncrByFloat(ctx, summaryKey, "total_cost", rec.CostUSD)
	pipe.HIncrBy(ctx, summaryKey, "total_calls", 1)
	pipe.HIncrBy(ctx, summaryKey, "total_input_tokens", int64(rec.InputTokens))
	pipe.HIncrBy(ctx, summaryKey, "total_output_tokens", int64(rec.OutputTokens))
	pipe.HIncrBy(ctx, summaryKey, "model:"+rec.Model+":calls", 1)
	pipe.HIncrByFloat(ctx, summaryKey, "model:"+rec.Model+":cost", rec.CostUSD)
	pipe.Expire(ctx, summaryKey, retentionTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cost: record usage: %w", err)
	}
	return nil
}

// DayStats reads the summary hash for one day key.
func (s *RedisStore) DayStats(ctx context.Context, day string) (Stats, error) {
	summaryKey := fmt.Sprintf("%s:daily:%s:summary", s.prefix, day)

	fields, err := s.client.HGetAll(ctx, summaryKey).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("cost: day stats %s: %w", day, err)
	}

	stats := Stats{Period: day, Models: map[string]ModelStats{}}
	for field, value := range fields {
		switch field {
		case "total_cost":
			stats.TotalCost, _ = strconv.ParseFloat(value, 64)
		case "total_calls":
			stats.TotalCalls, _ = strconv.Atoi(value)
		case "total_input_tokens":
			stats.TotalInputTokens, _ = strconv.Atoi(value)
		case "total_output_tokens":
			stats.TotalOutputTokens, _ = strconv.Atoi(value)
		default:
			if model, kind, ok := parseModelField(field); ok {
				ms := stats.Models[model]
				switch kind {
				case "calls":
					ms.Calls, _ = strconv.Atoi(value)
				case "cost":
					ms.Cost, _ = strconv.ParseFloat(value, 64)
				}
				stats.Models[model] = ms
			}
		}
	}
	return stats, nil
}

// parseModelField splits "model:<name>:calls" / "model:<name>:cost".
func parseModelField(field string) (model, kind string, ok bool) {
	if !strings.HasPrefix(field, "model:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(field, "model:")
	idx := strings.LastIndex(rest, ":")
	if idx <= 0 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}
