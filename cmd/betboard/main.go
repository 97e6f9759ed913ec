package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rnakano/betboard/internal/boardapi"
	"github.com/rnakano/betboard/internal/config"
	"github.com/rnakano/betboard/internal/logger"
	"github.com/rnakano/betboard/internal/notify"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	defer logger.Sync()
	logger.Info("Configuration loaded from %s", *configPath)

	client := boardapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	var notifier *notify.Client
	if cfg.Telegram.Enabled {
		notifier, err = notify.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram notifications enabled")
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	a := &app{
		cfg:      cfg,
		client:   client,
		notifier: notifier,
		in:       os.Stdin,
		out:      os.Stdout,
	}

	if err := a.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Client exited with error: %v", err)
	}
	logger.Info("Client stopped")
}
