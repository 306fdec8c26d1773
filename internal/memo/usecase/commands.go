package usecase

import (
	"context"

	"memokeeper/internal/cost"
	"memokeeper/internal/memo"
)

// SetMonitoring toggles monitoring for a chat.
func (uc *implUseCase) SetMonitoring(ctx context.Context, chatID int64, enabled bool) error {
	if err := uc.pub.SetChatEnabled(ctx, chatID, enabled); err != nil {
		return err
	}
	uc.l.Infof(ctx, "SetMonitoring: chat=%d enabled=%t", chatID, enabled)
	return nil
}

// RecentMemories returns the chat's latest published memories.
func (uc *implUseCase) RecentMemories(ctx context.Context, chatID int64, count int) ([]memo.Memory, error) {
	if count <= 0 {
		return nil, memo.ErrInvalidCount
	}
	return uc.pub.RecentMemories(ctx, chatID, count)
}

// CostReport renders the current usage and budget report.
func (uc *implUseCase) CostReport(ctx context.Context) string {
	return cost.FormatReport(uc.ledger.CurrentStats(ctx))
}
