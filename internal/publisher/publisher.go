package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"memokeeper/internal/extractor"
	pkgLog "memokeeper/pkg/log"
)

// seenCacheSize bounds the in-process cache of idempotency keys.
const seenCacheSize = 4096

// Publisher converts extraction items into canonical stream events with
// at-most-once delivery per identity key, and owns the per-chat monitoring
// toggle.
type Publisher struct {
	l     pkgLog.Logger
	store Store
	seen  *lru.Cache[string, struct{}]
}

// New creates the event publisher over the given store.
func New(l pkgLog.Logger, store Store) (*Publisher, error) {
	seen, err := lru.New[string, struct{}](seenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("publisher: seen cache: %w", err)
	}
	return &Publisher{l: l, store: store, seen: seen}, nil
}

// PublishMemoryAdded emits a memory.added event. Returns false when the
// (chat, message, content kind) triple was already published.
func (p *Publisher) PublishMemoryAdded(ctx context.Context, item extractor.Item, chatID, messageID, userID, timestamp int64) (bool, error) {
	key := identityKey(chatID, messageID, string(item.Type))
	if p.seen.Contains(key) {
		return false, nil
	}

	first, err := p.store.MarkProcessed(ctx, key)
	if err != nil {
		return false, err
	}
	if !first {
		p.seen.Add(key, struct{}{})
		return false, nil
	}

	metadata, _ := json.Marshal(item.Metadata)
	event := map[string]any{
		"event_type":        EventMemoryAdded,
		"memory_id":         fmt.Sprintf("mem_%d_%d_%s", chatID, messageID, item.Type),
		"chat_id":           chatID,
		"user_id":           userID,
		"source_message_id": messageID,
		"content":           item.Content,
		"content_type":      string(item.Type),
		"confidence":        item.Confidence,
		"timestamp":         timestamp,
		"tags":              []string{string(item.Type)},
		"scope":             "chat",
		"metadata":          string(metadata),
	}

	if err := p.store.AddEvent(ctx, event); err != nil {
		return false, err
	}

	p.seen.Add(key, struct{}{})
	return true, nil
}

// PublishTaskCreated emits a task.created event. The idempotency key uses
// the fixed "task" bucket regardless of the item's classified kind: one task
// event per message. assignee 0 means unassigned.
func (p *Publisher) PublishTaskCreated(ctx context.Context, item extractor.Item, chatID, messageID, userID, timestamp, assignee int64) (bool, error) {
	key := identityKey(chatID, messageID, "task")
	if p.seen.Contains(key) {
		return false, nil
	}

	first, err := p.store.MarkProcessed(ctx, key)
	if err != nil {
		return false, err
	}
	if !first {
		p.seen.Add(key, struct{}{})
		return false, nil
	}

	dueAt, _ := item.Metadata[extractor.MetaDeadline].(string)
	assigneeID := ""
	if assignee != 0 {
		assigneeID = fmt.Sprintf("%d", assignee)
	}

	event := map[string]any{
		"event_type":        EventTaskCreated,
		"task_id":           fmt.Sprintf("task_%d_%d", chatID, messageID),
		"chat_id":           chatID,
		"user_id":           userID,
		"source_message_id": messageID,
		"title":             taskTitle(item.Content),
		"priority":          priorityFor(item.Confidence),
		"due_at":            dueAt,
		"assignee_user_id":  assigneeID,
		"timestamp":         timestamp,
		"confidence":        item.Confidence,
	}

	if err := p.store.AddEvent(ctx, event); err != nil {
		return false, err
	}

	p.seen.Add(key, struct{}{})
	return true, nil
}

// IsChatEnabled reports the per-chat monitoring toggle. Store failures fail
// open: an unreachable flag store must not stop monitoring.
func (p *Publisher) IsChatEnabled(ctx context.Context, chatID int64) bool {
	enabled, err := p.store.ChatEnabled(ctx, chatID)
	if err != nil {
		p.l.Warnf(ctx, "publisher: chat flag unavailable, defaulting to enabled: %v", err)
		return true
	}
	return enabled
}

// SetChatEnabled overwrites the per-chat monitoring toggle.
func (p *Publisher) SetChatEnabled(ctx context.Context, chatID int64, enabled bool) error {
	return p.store.SetChatEnabled(ctx, chatID, enabled)
}

// RecentMemories reads back the chat's latest memory.added events.
func (p *Publisher) RecentMemories(ctx context.Context, chatID int64, count int) ([]Memory, error) {
	events, err := p.store.RecentEvents(ctx, chatID, count)
	if err != nil {
		return nil, err
	}

	var memories []Memory
	for _, event := range events {
		if fmt.Sprint(event["event_type"]) != EventMemoryAdded {
			continue
		}
		memories = append(memories, Memory{
			Content:     fmt.Sprint(event["content"]),
			ContentType: fmt.Sprint(event["content_type"]),
			Confidence:  toFloat(event["confidence"]),
			Timestamp:   toInt64(event["timestamp"]),
		})
	}
	return memories, nil
}

// ProcessedCount returns the idempotency-marker count for the stats endpoint.
func (p *Publisher) ProcessedCount(ctx context.Context) (int64, error) {
	return p.store.ProcessedCount(ctx)
}

// Ping reports backing-store reachability for the stats endpoint.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.store.Ping(ctx)
}

func identityKey(chatID, messageID int64, kind string) string {
	return fmt.Sprintf("mem:%d:%d:%s", chatID, messageID, kind)
}

// taskTitle strips the task display prefix from the normalized content.
func taskTitle(content string) string {
	title := strings.TrimPrefix(content, "[Задача] ")
	return strings.TrimPrefix(title, "[Task] ")
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		var f float64
		fmt.Sscanf(n, "%g", &f)
		return f
	default:
		return 0
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	case string:
		var i int64
		fmt.Sscanf(n, "%d", &i)
		return i
	default:
		return 0
	}
}
