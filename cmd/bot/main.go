package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/scheduler"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/config"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/logger"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/storage/postgres"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/storage/redis"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/tracker"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting Huntoza tracker bot",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("remind_interval", cfg.RemindInterval),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	tokens := huntoza.NewTokenStore()

	// seed from redis so a restart does not force a fresh login
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if access, refresh := cache.LoadTokens(seedCtx); access != "" {
		tokens.Set(access, refresh)
		log.Info("restored session tokens from cache")
	}
	seedCancel()

	tokens.OnChange(func(access, refresh string) {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer saveCancel()
		if err := cache.SaveTokens(saveCtx, access, refresh); err != nil {
			log.Warn("failed to persist session tokens", zap.Error(err))
		}
	})

	client := huntoza.New(cfg.APIBaseURL, cfg.APITimeout, tokens, log)
	log.Info("Huntoza API client created")

	loginCtx, loginCancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	if err := client.Login(loginCtx, cfg.AccountEmail, cfg.AccountPassword); err != nil {
		loginCancel()
		log.Fatal("failed to log in to Huntoza", zap.Error(err))
	}
	loginCancel()
	log.Info("logged in to Huntoza", zap.String("email", cfg.AccountEmail))

	trk := tracker.New(client, store, log)

	planCtx, planCancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	plan := trk.LoadCurrentPlan(planCtx)
	planCancel()
	if msg := trk.Err(); msg != "" {
		log.Warn("could not load current plan, limits default to the free tier",
			zap.String("error", msg))
		trk.ClearErrors()
	} else {
		log.Info("current plan loaded", zap.String("plan", plan.Plan.Name))
	}

	log.Info("initializing Telegram bot...")
	tgBot, err := bot.New(cfg, store, cache, trk, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	log.Info("Telegram bot initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("starting task reminder...")
	reminder := scheduler.New(
		tgBot.GetBot(),
		store,
		trk,
		cfg,
		log,
	)

	go reminder.Start(ctx)

	log.Info("bot is running...")
	log.Info("press Ctrl+C to stop")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")

	log.Info("bot stopped")
}
