package main

import (
	"context"
	"os/signal"
	"syscall"

	"bearwatch/internal/config"
	"bearwatch/internal/engine"
	"bearwatch/internal/ledger"
	"bearwatch/internal/logger"
	"bearwatch/internal/models"
	"bearwatch/internal/report"
	"bearwatch/internal/sentiment"
	"bearwatch/internal/server"
	"bearwatch/internal/sources"
	"bearwatch/internal/store"
	"bearwatch/internal/telegram"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Get()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("cannot open user store")
	}

	var transport engine.Transport
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.FetchTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect telegram bot")
		}
		transport = bot
	} else {
		transport = telegram.NewDisabled()
	}

	signalSources := []models.SignalSource{
		sources.NewRedditClient(cfg.RedditSubreddits, cfg.FetchTimeout),
		sources.NewYahooFinanceClient(cfg.YahooTickers, cfg.FetchTimeout),
		sources.NewMoneycontrolClient(cfg.FetchTimeout),
	}
	if cfg.CryptoPanicToken != "" {
		signalSources = append(signalSources, sources.NewCryptoPanicClient(cfg.CryptoPanicToken, cfg.FetchTimeout))
	}
	fetcher := sources.NewFetcher(cfg.BatchSize, signalSources...)

	classifier := sentiment.NewClassifier(sentiment.NewVADERScorer())
	led := ledger.New(cfg.CooldownWindow)

	var generator report.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = report.NewOpenAIGenerator(cfg.OpenAIAPIKey)
	} else {
		generator = report.NewPlaceholder()
	}

	eng := engine.New(st, fetcher, transport, classifier, led, cfg.MaxAlertsPerRun)

	go engine.NewScheduler(eng, cfg.CheckInterval).Run(ctx)

	srv := server.New(eng, st, fetcher, classifier, generator, led)

	log.Info().Str("port", cfg.ServerPort).Msg("bearwatch started")
	if err := srv.Run(ctx, cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("bearwatch stopped")
}
