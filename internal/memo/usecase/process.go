package usecase

import (
	"context"

	"memokeeper/internal/extractor"
	"memokeeper/internal/memo"
	"memokeeper/internal/model"
)

// ProcessMessage runs one inbound message through the pipeline. Rejections
// are not errors; only unexpected store failures surface, and even then the
// remaining items are still attempted.
func (uc *implUseCase) ProcessMessage(ctx context.Context, sc model.Scope, msg model.Message) (memo.ProcessOutput, error) {
	if len(uc.groupIDs) > 0 && !uc.groupIDs[msg.ChatID] {
		return memo.ProcessOutput{Filtered: true, FilterReason: memo.ReasonUnmonitored}, nil
	}

	if !uc.pub.IsChatEnabled(ctx, msg.ChatID) {
		return memo.ProcessOutput{Filtered: true, FilterReason: memo.ReasonDisabled}, nil
	}

	if msg.Text == "" {
		return memo.ProcessOutput{Filtered: true, FilterReason: memo.ReasonNoText}, nil
	}

	ok, reason := uc.filter.ShouldProcess(msg.Text)
	if !ok {
		uc.l.Debugf(ctx, "ProcessMessage: message %d filtered: %s", msg.MessageID, reason)
		return memo.ProcessOutput{Filtered: true, FilterReason: reason}, nil
	}

	cleaned := uc.filter.Clean(msg.Text)

	items := uc.extractor.Extract(ctx, cleaned)
	if len(items) == 0 {
		uc.l.Debugf(ctx, "ProcessMessage: no content extracted from message %d", msg.MessageID)
		return memo.ProcessOutput{}, nil
	}

	var published int
	var lastErr error
	for _, item := range items {
		if item.Confidence < uc.threshold {
			continue
		}

		if item.Type == extractor.TypeTask {
			emitted, err := uc.pub.PublishTaskCreated(ctx, item, msg.ChatID, msg.MessageID, msg.UserID, msg.Timestamp, 0)
			if err != nil {
				uc.l.Errorf(ctx, "ProcessMessage: task publish failed for message %d: %v", msg.MessageID, err)
				lastErr = err
			} else if emitted {
				published++
				uc.l.Infof(ctx, "ProcessMessage: task created: %s", snippet(item.Content))
			}
		}

		// Every item is also published as a memory.
		emitted, err := uc.pub.PublishMemoryAdded(ctx, item, msg.ChatID, msg.MessageID, msg.UserID, msg.Timestamp)
		if err != nil {
			uc.l.Errorf(ctx, "ProcessMessage: memory publish failed for message %d: %v", msg.MessageID, err)
			lastErr = err
			continue
		}
		if emitted {
			published++
			uc.l.Infof(ctx, "ProcessMessage: memory added: %s", snippet(item.Content))
		}
	}

	if published > 0 {
		uc.l.Infof(ctx, "ProcessMessage: user=%s message=%d published %d items", sc.UserID, msg.MessageID, published)
	}

	return memo.ProcessOutput{Published: published}, lastErr
}

func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= 50 {
		return s
	}
	return string(runes[:50]) + "..."
}
