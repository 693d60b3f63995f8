package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"crack-meter/config"
	telegram "crack-meter/internal/api"
	"crack-meter/internal/container"
	"crack-meter/internal/infrastructure/imagefile"
	"crack-meter/internal/infrastructure/storage"
	"crack-meter/internal/infrastructure/vision"
	"crack-meter/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}
	logger.Setup(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	if cfg.TelegramToken == "" {
		logger.Logger.Fatal("TELEGRAM_TOKEN is required")
	}

	// Создаём хранилище сессий
	sessionRepo := storage.NewMemorySessionRepository()

	// Собираем сервисы приложения
	normalizer, segmenter := vision.NewBackend()
	appContainer := container.New(
		sessionRepo,
		imagefile.NewDecoder(),
		normalizer,
		segmenter,
		imagefile.NewHighlighter(),
		cfg.Workers,
	)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		logger.WithError(err).Fatal("failed to create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.WithField("backend", vision.BackendName).Info("bot is running")
	if err := bot.Run(ctx); err != nil {
		logger.WithError(err).Fatal("bot error")
	}
}
