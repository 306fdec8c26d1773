package telegram

import (
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"memokeeper/internal/memo"
	pkgLog "memokeeper/pkg/log"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Sender is the outbound Telegram dependency; *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type handler struct {
	l   pkgLog.Logger
	uc  memo.UseCase
	bot Sender
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc memo.UseCase, bot Sender) Handler {
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
	}
}
