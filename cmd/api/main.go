package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/punchamoorthee/txnproc/internal/api"
	"github.com/punchamoorthee/txnproc/internal/config"
	"github.com/punchamoorthee/txnproc/internal/csvio"
	"github.com/punchamoorthee/txnproc/internal/ledger"
	"github.com/punchamoorthee/txnproc/internal/service"
)

// Processes a transaction file, then serves the resulting account states
// read-only over HTTP.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: api <transactions.csv>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	input, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Unable to open transaction file: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	led := ledger.New()
	processor := service.NewProcessor(led, cfg.LockedPolicy, logger)

	if err := processor.Run(csvio.NewReader(input)); err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	input.Close()

	stats := processor.Stats()
	log.Printf("Processed %d transactions (%d rejected, %d malformed) into %d accounts",
		stats.Applied+stats.Rejected, stats.Rejected, stats.Malformed, led.Len())

	// Router
	handler := api.NewHandler(led)
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/accounts", handler.ListAccounts).Methods("GET")
	apiV1.HandleFunc("/accounts/{id}", handler.GetAccount).Methods("GET")

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
