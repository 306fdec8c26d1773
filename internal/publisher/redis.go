package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// dedupTTL is the retention window of the processed-marker set.
	dedupTTL = 30 * 24 * time.Hour

	// recentScanLimit caps how far back RecentEvents scans the stream.
	recentScanLimit = 500
)

// RedisStore backs the publisher with Redis: XADD for the stream, SADD for
// idempotency markers, plain keys for chat flags.
type RedisStore struct {
	client   *redis.Client
	stream   string
	dedupSet string
	prefix   string
}

// NewRedisStore creates the Redis-backed publisher store.
func NewRedisStore(client *redis.Client, stream string) *RedisStore {
	return &RedisStore{
		client:   client,
		stream:   stream,
		dedupSet: "memo:processed",
		prefix:   "memo",
	}
}

var _ Store = (*RedisStore)(nil)

// MarkProcessed uses SADD's return value as the atomic test-and-insert.
func (s *RedisStore) MarkProcessed(ctx context.Context, key string) (bool, error) {
	added, err := s.client.SAdd(ctx, s.dedupSet, key).Result()
	if err != nil {
		return false, fmt.Errorf("publisher: mark processed: %w", err)
	}
	s.client.Expire(ctx, s.dedupSet, dedupTTL)
	return added == 1, nil
}

// AddEvent appends the event to the stream. Non-scalar values (tags,
// metadata maps) are JSON-encoded since stream fields are flat strings.
func (s *RedisStore) AddEvent(ctx context.Context, event map[string]any) error {
	values := make(map[string]any, len(event))
	for field, value := range event {
		switch value.(type) {
		case string, int, int64, float64, bool:
			values[field] = value
		default:
			raw, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("publisher: encode field %s: %w", field, err)
			}
			values[field] = string(raw)
		}
	}

	if err := s.client.XAdd(ctx, &redis.XAddArgs{Stream: s.stream, Values: values}).Err(); err != nil {
		return fmt.Errorf("publisher: add event: %w", err)
	}
	return nil
}

// RecentEvents scans the stream backwards and keeps entries for the chat.
func (s *RedisStore) RecentEvents(ctx context.Context, chatID int64, count int) ([]map[string]any, error) {
	entries, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", recentScanLimit).Result()
	if err != nil {
		return nil, fmt.Errorf("publisher: recent events: %w", err)
	}

	want := strconv.FormatInt(chatID, 10)
	var events []map[string]any
	for _, entry := range entries {
		if len(events) >= count {
			break
		}
		if fmt.Sprint(entry.Values["chat_id"]) != want {
			continue
		}
		event := make(map[string]any, len(entry.Values))
		for field, value := range entry.Values {
			event[field] = value
		}
		events = append(events, event)
	}
	return events, nil
}

// ProcessedCount returns the cardinality of the processed set.
func (s *RedisStore) ProcessedCount(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, s.dedupSet).Result()
	if err != nil {
		return 0, fmt.Errorf("publisher: processed count: %w", err)
	}
	return n, nil
}

// ChatEnabled reads the monitoring flag; missing keys mean enabled.
func (s *RedisStore) ChatEnabled(ctx context.Context, chatID int64) (bool, error) {
	value, err := s.client.Get(ctx, s.chatKey(chatID)).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("publisher: chat enabled: %w", err)
	}
	return value == "1", nil
}

// SetChatEnabled overwrites the monitoring flag.
func (s *RedisStore) SetChatEnabled(ctx context.Context, chatID int64, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	if err := s.client.Set(ctx, s.chatKey(chatID), value, 0).Err(); err != nil {
		return fmt.Errorf("publisher: set chat enabled: %w", err)
	}
	return nil
}

// Ping reports Redis reachability.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) chatKey(chatID int64) string {
	return fmt.Sprintf("%s:chat:%d:enabled", s.prefix, chatID)
}
