package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/config"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/maintain"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/runlog"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/store"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty = built-in defaults)")
	passSpec := flag.String("passes", "all", "comma-separated maintenance passes (dedupe,normalize,sort) or all")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting maintain",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	passes, err := maintain.ParsePasses(*passSpec)
	if err != nil {
		logger.Error("bad -passes value", "error", err)
		os.Exit(1)
	}

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	st, err := store.New(cfg.Dirs.SecurityData, logger)
	if err != nil {
		logger.Error("failed to open ledger store", "error", err)
		os.Exit(1)
	}

	flog := runlog.New(cfg.Dirs.FailureLog)
	m := maintain.New(st, cfg.Pool.Workers, passes, flog, logger)

	sum, err := m.Run(ctx)
	if err != nil {
		logger.Error("maintenance failed", "error", err)
		os.Exit(1)
	}
	logger.Info("maintenance finished",
		"run_id", flog.RunID(),
		"updated", sum.Updated,
		"unchanged", sum.Unchanged,
		"failed", sum.Failed,
	)
}
