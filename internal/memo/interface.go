package memo

import (
	"context"

	"memokeeper/internal/extractor"
	"memokeeper/internal/model"
)

// UseCase defines the business logic interface for the memo domain.
type UseCase interface {
	// ProcessMessage runs one inbound message through the pipeline:
	// admission, cleaning, classification and idempotent publishing.
	ProcessMessage(ctx context.Context, sc model.Scope, msg model.Message) (ProcessOutput, error)

	// SetMonitoring toggles per-chat monitoring.
	SetMonitoring(ctx context.Context, chatID int64, enabled bool) error

	// RecentMemories returns the chat's latest published memories.
	RecentMemories(ctx context.Context, chatID int64, count int) ([]Memory, error)

	// CostReport renders the current usage/budget report.
	CostReport(ctx context.Context) string
}

// Extractor is the classification dependency of the pipeline.
type Extractor interface {
	Extract(ctx context.Context, text string) []extractor.Item
}

// Publisher is the event-publishing dependency of the pipeline.
type Publisher interface {
	PublishMemoryAdded(ctx context.Context, item extractor.Item, chatID, messageID, userID, timestamp int64) (bool, error)
	PublishTaskCreated(ctx context.Context, item extractor.Item, chatID, messageID, userID, timestamp, assignee int64) (bool, error)
	IsChatEnabled(ctx context.Context, chatID int64) bool
	SetChatEnabled(ctx context.Context, chatID int64, enabled bool) error
	RecentMemories(ctx context.Context, chatID int64, count int) ([]Memory, error)
}
