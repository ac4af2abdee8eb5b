package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/config"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/ingest"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/nse"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/runlog"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/store"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty = built-in defaults)")
	datestr := flag.String("date", "", "ingest a single date (DD-MM-YYYY) instead of the recent window")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting update",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("failed to resolve timezone", "error", err)
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
	bhav, err := store.NewBhavCache(cfg.Dirs.BhavData)
	if err != nil {
		logger.Error("failed to open batch cache", "error", err)
		os.Exit(1)
	}

	client := nse.NewClient(
		nse.WithBaseURLs(cfg.NSE.APIURL, cfg.NSE.ArchiveURL),
		nse.WithTimeout(cfg.NSE.Timeout.Std()),
		nse.WithRetryPolicy(nse.RetryPolicy{MaxAttempts: cfg.NSE.MaxAttempts, Delay: cfg.NSE.RetryDelay.Std()}),
		nse.WithRateLimit(cfg.NSE.RequestsPerSec, cfg.NSE.Burst),
		nse.WithBreakerThreshold(cfg.NSE.BreakerThreshold),
		nse.WithLogger(logger),
	)

	renames := ingest.LoadRenames(ctx, client, cfg.Dirs.SymbolChange, logger)
	logger.Info("rename history loaded", "entries", len(renames))

	flog := runlog.New(cfg.Dirs.FailureLog)
	ing := ingest.New(
		ingest.Config{Workers: cfg.Pool.Workers, Location: loc},
		client, st, bhav, renames, flog, logger,
	)

	if *datestr != "" {
		date, err := model.ParseDate(*datestr)
		if err != nil {
			logger.Error("bad -date value", "error", err)
			os.Exit(1)
		}
		sum, err := ing.Run(ctx, date)
		if err != nil {
			logger.Error("ingest failed", "date", date, "error", err)
			os.Exit(1)
		}
		logger.Info("update finished", "run_id", flog.RunID(), "failed", sum.Failed)
		return
	}

	if err := ing.RunRecent(ctx); err != nil {
		logger.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	logger.Info("update finished", "run_id", flog.RunID())
}
