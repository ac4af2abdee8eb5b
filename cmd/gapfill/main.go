package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/config"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/gapfill"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/nse"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/runlog"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/schedule"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/store"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty = built-in defaults)")
	all := flag.Bool("all", false, "ignore the weekday schedule and sweep every ledger")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting gapfill",
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

	buckets := cfg.Schedule.Buckets
	if *all {
		buckets = nil
	}
	shard, err := schedule.Parse(buckets)
	if err != nil {
		logger.Error("bad schedule", "error", err)
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

	client := nse.NewClient(
		nse.WithBaseURLs(cfg.NSE.APIURL, cfg.NSE.ArchiveURL),
		nse.WithTimeout(cfg.NSE.Timeout.Std()),
		nse.WithRetryPolicy(nse.RetryPolicy{MaxAttempts: cfg.NSE.MaxAttempts, Delay: cfg.NSE.RetryDelay.Std()}),
		nse.WithRateLimit(cfg.NSE.RequestsPerSec, cfg.NSE.Burst),
		nse.WithBreakerThreshold(cfg.NSE.BreakerThreshold),
		nse.WithLogger(logger),
	)

	flog := runlog.New(cfg.Dirs.FailureLog)
	filler := gapfill.New(
		gapfill.Config{Workers: cfg.Pool.Workers, Location: loc},
		client, st, shard, flog, logger,
	)

	sum, err := filler.Run(ctx)
	if err != nil {
		logger.Error("gapfill failed", "error", err)
		os.Exit(1)
	}
	logger.Info("gapfill finished",
		"run_id", flog.RunID(),
		"updated", sum.Updated,
		"complete", sum.Complete,
		"failed", sum.Failed,
	)
}
