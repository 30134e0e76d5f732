package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"slices"

	"github.com/punchamoorthee/txnproc/internal/config"
	"github.com/punchamoorthee/txnproc/internal/csvio"
	"github.com/punchamoorthee/txnproc/internal/ledger"
	"github.com/punchamoorthee/txnproc/internal/service"
	"github.com/punchamoorthee/txnproc/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: engine <transactions.csv>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	input, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Unable to open transaction file: %v", err)
	}
	defer input.Close()

	// Diagnostics go to stderr; stdout carries only the account CSV.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	led := ledger.New()
	processor := service.NewProcessor(led, cfg.LockedPolicy, logger)

	if err := processor.Run(csvio.NewReader(input)); err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	if err := csvio.WriteSnapshot(os.Stdout, led.Snapshot()); err != nil {
		log.Fatalf("Unable to write account snapshot: %v", err)
	}

	stats := processor.Stats()
	logger.Info("run complete",
		"accounts", led.Len(),
		"applied", stats.Applied,
		"rejected", stats.Rejected,
		"malformed", stats.Malformed,
	)

	if cfg.SnapshotDB != "" {
		exportSnapshot(cfg.SnapshotDB, led, logger)
	}
}

func exportSnapshot(connString string, led *ledger.Ledger, logger *slog.Logger) {
	snapshots, err := store.NewSnapshotStore(connString)
	if err != nil {
		log.Fatalf("Unable to connect to snapshot database: %v", err)
	}
	defer snapshots.Close()

	runID, err := snapshots.SaveSnapshot(context.Background(), slices.Collect(led.Snapshot()))
	if err != nil {
		log.Fatalf("Snapshot export failed: %v", err)
	}
	logger.Info("snapshot exported", "run_id", runID.String())
}
