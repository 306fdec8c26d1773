package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"memokeeper/internal/model"
	pkgResponse "memokeeper/pkg/response"
)

const (
	defaultRecentCount = 5
	maxRecentCount     = 20
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine: Telegram expects a reply within a few seconds, but
// the pipeline may spend up to the remote-classifier timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message

	// Detach from the HTTP request context, which gets cancelled after the
	// response is written.
	go func() {
		bgCtx := context.Background()
		if err := h.processUpdate(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processing failed: %v", err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processUpdate handles a single Telegram message.
func (h *handler) processUpdate(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.IsCommand() {
		return h.handleCommand(ctx, msg)
	}

	// Only group chats are monitored.
	if msg.Chat.Type != "group" && msg.Chat.Type != "supergroup" {
		return nil
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return nil
	}

	var userID int64
	sc := model.Scope{}
	if msg.From != nil {
		userID = msg.From.ID
		sc.UserID = fmt.Sprintf("telegram_%d", msg.From.ID)
		sc.Username = msg.From.UserName
	}

	_, err := h.uc.ProcessMessage(ctx, sc, model.Message{
		ChatID:    msg.Chat.ID,
		MessageID: int64(msg.MessageID),
		UserID:    userID,
		Timestamp: int64(msg.Date),
		Text:      text,
	})
	return err
}

func (h *handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "mem_on":
		if err := h.uc.SetMonitoring(ctx, chatID, true); err != nil {
			return err
		}
		return h.reply(chatID, "🔔 MemoKeeper включён для этого чата.")

	case "mem_off":
		if err := h.uc.SetMonitoring(ctx, chatID, false); err != nil {
			return err
		}
		return h.reply(chatID, "🔕 MemoKeeper отключён для этого чата. Используй /mem_on чтобы включить.")

	case "mem_last":
		count := defaultRecentCount
		if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
			if n, err := strconv.Atoi(args); err == nil && n > 0 {
				count = min(n, maxRecentCount)
			}
		}

		memories, err := h.uc.RecentMemories(ctx, chatID, count)
		if err != nil {
			h.l.Errorf(ctx, "telegram handler: recent memories failed: %v", err)
			return h.reply(chatID, "Не удалось получить записи. Попробуй позже.")
		}
		if len(memories) == 0 {
			return h.reply(chatID, "📋 Записей пока нет.")
		}

		lines := []string{fmt.Sprintf("📋 Последние %d записей:", len(memories))}
		for i, m := range memories {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, m.Content))
		}
		return h.reply(chatID, strings.Join(lines, "\n"))

	case "cost":
		return h.reply(chatID, h.uc.CostReport(ctx))
	}

	return nil
}

func (h *handler) reply(chatID int64, text string) error {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("telegram handler: send reply: %w", err)
	}
	return nil
}
