package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	redislib "github.com/redis/go-redis/v9"

	"memokeeper/config"
	redisCfg "memokeeper/config/redis"
	"memokeeper/internal/classifier"
	"memokeeper/internal/cost"
	"memokeeper/internal/extractor"
	"memokeeper/internal/filter"
	"memokeeper/internal/httpserver"
	tgDelivery "memokeeper/internal/memo/delivery/telegram"
	"memokeeper/internal/memo/usecase"
	"memokeeper/internal/publisher"
	"memokeeper/pkg/log"
	"memokeeper/pkg/openai"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Memo Keeper...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Monitored groups: %d", len(cfg.Telegram.GroupIDs))

	// 3. Redis (optional, degrades to in-memory stores)
	var redisClient *redislib.Client
	if client, rErr := redisCfg.Connect(ctx, cfg.Redis); rErr != nil {
		logger.Warnf(ctx, "Redis not available, using in-memory stores: %v", rErr)
	} else {
		redisClient = client
		defer func() {
			if dErr := redisCfg.Disconnect(); dErr != nil {
				logger.Warnf(ctx, "Redis disconnect: %v", dErr)
			}
		}()
	}

	// 4. Cost ledger
	budgets := cost.Budgets{
		Daily:   cfg.Budget.Daily,
		Weekly:  cfg.Budget.Weekly,
		Monthly: cfg.Budget.Monthly,
	}
	var costStore cost.Store
	if redisClient != nil {
		costStore = cost.NewRedisStore(redisClient, cfg.Redis.Prefix)
	} else {
		costStore = cost.NewMemoryStore()
	}
	ledger := cost.New(logger, costStore, budgets)

	// 5. Classifier chain
	rules := extractor.New()
	backend := classifier.Backend(classifier.NewDisabledBackend())
	if cfg.Classifier.UseOpenAI {
		openaiClient, oErr := openai.New(openai.Config{
			APIKey: cfg.Classifier.OpenAIAPIKey,
			Model:  cfg.Classifier.OpenAIModel,
		})
		if oErr != nil {
			logger.Error(ctx, "Failed to initialize OpenAI client: ", oErr)
			return
		}
		backend = classifier.NewOpenAIBackend(logger, openaiClient, cfg.Classifier.OpenAIModel, ledger)
		logger.Infof(ctx, "OpenAI classification enabled (model: %s)", cfg.Classifier.OpenAIModel)
	} else {
		logger.Info(ctx, "OpenAI classification disabled, rules only")
	}
	hybrid := classifier.NewHybrid(logger, rules, backend, cfg.Classifier.ConfidenceThreshold)

	// 6. Event publisher
	var eventStore publisher.Store
	if redisClient != nil {
		eventStore = publisher.NewRedisStore(redisClient, cfg.Redis.Stream)
	} else {
		eventStore = publisher.NewMemoryStore()
	}
	pub, err := publisher.New(logger, eventStore)
	if err != nil {
		logger.Error(ctx, "Failed to initialize publisher: ", err)
		return
	}

	// 7. Memo usecase
	msgFilter := filter.New(cfg.Classifier.MaxMessageLength)
	memoUC := usecase.New(logger, msgFilter, hybrid, pub, ledger, cfg.Classifier.ConfidenceThreshold, cfg.Telegram.GroupIDs)

	// 8. Telegram bot + delivery
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Telegram bot: ", err)
		return
	}
	logger.Infof(ctx, "Authorized as @%s", bot.Self.UserName)

	telegramHandler := tgDelivery.New(logger, memoUC, bot)

	if cfg.Telegram.WebhookURL != "" {
		wh, whErr := tgbotapi.NewWebhook(cfg.Telegram.WebhookURL + "/webhook/telegram")
		if whErr != nil {
			logger.Warnf(ctx, "Invalid webhook URL: %v", whErr)
		} else if _, whErr = bot.Request(wh); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s/webhook/telegram", cfg.Telegram.WebhookURL)
			defer func() {
				if _, delErr := bot.Request(tgbotapi.DeleteWebhookConfig{}); delErr != nil {
					logger.Warnf(ctx, "Failed to remove Telegram webhook: %v", delErr)
				}
			}()
		}
	}

	if cfg.Telegram.AdminChatID != 0 {
		msg := tgbotapi.NewMessage(cfg.Telegram.AdminChatID,
			fmt.Sprintf("🤖 Memo Keeper запущен\nГрупп под наблюдением: %d", len(cfg.Telegram.GroupIDs)))
		if _, sErr := bot.Send(msg); sErr != nil {
			logger.Warnf(ctx, "Failed to notify admin: %v", sErr)
		}
	}

	// 9. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
		Stats:           eventStore,
		MonitoredGroups: len(cfg.Telegram.GroupIDs),
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
