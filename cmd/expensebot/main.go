package main

import (
	"context"
	"errors"
	"os"

	"expensebot/internal/backend"
	"expensebot/internal/bot"
	"expensebot/internal/cli"
	"expensebot/internal/command"
	"expensebot/internal/ledger"
	"expensebot/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	// Info-level logger until the configuration names the real level.
	logger := cli.SetupLogger("")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.ConfigureLogger(cfg)

	logger.Info("Starting expensebot",
		log.FieldOperation, log.OpStartup,
		"backend", cfg.LedgerBackend,
		"prefix", cfg.CommandPrefix,
		"amqp_enabled", cfg.AMQPEnabled())

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	res, err := backend.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.LedgerBackend)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	handler := bot.NewHandler(
		command.NewParser(cfg.CommandPrefix),
		ledger.New(res.Ledger, logger),
		res.Publisher,
		logger,
	)

	tg, err := bot.NewTelegram(cfg.TelegramToken, cfg.TelegramDebug, handler, logger)
	if err != nil {
		logger.Error("Failed to initialize Telegram bot", log.FieldError, err)
		os.Exit(1)
	}

	if err := tg.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Bot stopped gracefully", log.FieldOperation, log.OpShutdown)
}
