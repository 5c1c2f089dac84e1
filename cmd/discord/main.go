package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/starlover/watchtower/internal/config"
	"github.com/starlover/watchtower/internal/discord"
	"github.com/starlover/watchtower/internal/logging"
	"github.com/starlover/watchtower/internal/storage"
	v "github.com/starlover/watchtower/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting bot",
		zap.String("app", v.AppName),
		zap.String("version", v.Version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	bot, err := discord.New(cfg, store, logger)
	if err != nil {
		logger.Fatal("failed to build bot", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("received signal, shutting down", zap.String("signal", s.String()))
		cancel()
	case err := <-errCh:
		if err != nil {
			logger.Error("bot error", zap.Error(err))
		}
		cancel()
	}

	logger.Info("bot exited cleanly")
}
