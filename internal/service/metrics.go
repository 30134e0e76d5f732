package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "txnproc_transactions_processed_total",
		Help: "Transactions processed, labeled by type and outcome",
	}, []string{"type", "outcome"})

	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txnproc_rows_skipped_total",
		Help: "Input rows skipped due to malformed syntax",
	})
)
