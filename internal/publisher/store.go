package publisher

import "context"

// Store is the backing store for the event stream, idempotency markers and
// per-chat monitoring flags. MarkProcessed must be a single atomic
// add-if-absent: two concurrent calls with the same key must return true
// exactly once between them.
type Store interface {
	// MarkProcessed records the idempotency key and reports whether it was
	// newly added. Implementations refresh the 30-day retention window of
	// the processed set on every call.
	MarkProcessed(ctx context.Context, key string) (bool, error)

	// AddEvent appends one event to the stream.
	AddEvent(ctx context.Context, event map[string]any) error

	// RecentEvents returns up to count most-recent events for the chat,
	// newest first.
	RecentEvents(ctx context.Context, chatID int64, count int) ([]map[string]any, error)

	// ProcessedCount returns the size of the processed set.
	ProcessedCount(ctx context.Context) (int64, error)

	// ChatEnabled reports the monitoring flag for the chat; chats with no
	// recorded state default to enabled.
	ChatEnabled(ctx context.Context, chatID int64) (bool, error)

	// SetChatEnabled overwrites the monitoring flag unconditionally.
	SetChatEnabled(ctx context.Context, chatID int64, enabled bool) error

	// Ping reports store reachability.
	Ping(ctx context.Context) error
}
