package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/handlers"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/middleware"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/config"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/storage/postgres"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/storage/redis"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/tracker"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot     *tele.Bot
	store   *postgres.Store
	cache   *redis.Cache
	tracker *tracker.Facade
	config  *config.Config
	logger  *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	trk *tracker.Facade,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		store:   store,
		cache:   cache,
		tracker: trk,
		config:  cfg,
		logger:  logger,
	}

	bot.setupMiddleware()

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.RateLimit(b.cache, b.logger))
}

func (b *Bot) registerHandlers() {
	ctx := &handlers.Context{
		Store:   b.store,
		Cache:   b.cache,
		Tracker: b.tracker,
		Config:  b.config,
		Logger:  b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/jobs", handlers.HandleJobs(ctx))
	b.bot.Handle("/tasks", handlers.HandleTasks(ctx))
	b.bot.Handle("/contacts", handlers.HandleContacts(ctx))
	b.bot.Handle("/stats", handlers.HandleStats(ctx))
	b.bot.Handle("/plan", handlers.HandlePlan(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))

	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) Stop() {
	b.logger.Info("bot stopped")
	b.bot.Stop()
}

func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}
