package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/txnproc/internal/ledger"
	"github.com/punchamoorthee/txnproc/internal/models"
	"github.com/punchamoorthee/txnproc/internal/service"
)

// Config holds the benchmark settings
var (
	transactions int
	clients      int
	workload     string
	seed         int64
)

func init() {
	flag.IntVar(&transactions, "transactions", 1000000, "Number of transactions to generate")
	flag.IntVar(&clients, "clients", 1000, "Number of distinct clients")
	flag.StringVar(&workload, "workload", "uniform", "Workload type: uniform | hotspot")
	flag.Int64Var(&seed, "seed", 42, "RNG seed")
}

func main() {
	flag.Parse()
	runID := uuid.New()
	log.Printf("Starting Benchmark %s: %s | Transactions: %d | Clients: %d", runID, workload, transactions, clients)

	txs := generate()

	// Rejections are expected under load; keep them out of the timing output.
	quiet := slog.New(slog.DiscardHandler)
	processor := service.NewProcessor(ledger.New(), service.LockedAllowDisputes, quiet)

	start := time.Now()
	for _, tx := range txs {
		processor.Apply(tx)
	}
	printResults(runID, processor, time.Since(start))
}

func generate() []models.Transaction {
	rng := rand.New(rand.NewSource(seed))
	txs := make([]models.Transaction, 0, transactions)

	for i := 0; i < transactions; i++ {
		client := pickClient(rng)
		amount := decimal.NewFromFloat(rng.Float64()*1000 + 0.0001).Round(4)
		id := models.TxID(i + 1)

		switch {
		case rng.Float64() < 0.30:
			txs = append(txs, models.Transaction{Type: models.TxWithdrawal, Client: client, Tx: id, Amount: amount})
		case rng.Float64() < 0.05:
			txs = append(txs, models.Transaction{Type: models.TxDeposit, Client: client, Tx: id, Amount: amount})
			txs = append(txs, models.Transaction{Type: models.TxDispute, Client: client, Tx: id})
		default:
			txs = append(txs, models.Transaction{Type: models.TxDeposit, Client: client, Tx: id, Amount: amount})
		}
	}
	return txs
}

func pickClient(rng *rand.Rand) models.ClientID {
	if workload == "hotspot" {
		// Hotspot: 90% of traffic goes to clients 1 & 2
		if rng.Float32() < 0.90 {
			if rng.Float32() < 0.5 {
				return 1
			}
			return 2
		}
	}
	return models.ClientID(rng.Intn(clients) + 1)
}

func printResults(runID uuid.UUID, processor *service.Processor, d time.Duration) {
	stats := processor.Stats()
	total := stats.Applied + stats.Rejected
	tps := float64(total) / d.Seconds()

	results := map[string]interface{}{
		"run_id":       runID.String(),
		"workload":     workload,
		"duration_sec": d.Seconds(),
		"transactions": total,
		"throughput":   tps,
		"applied":      stats.Applied,
		"rejected":     stats.Rejected,
		"accounts":     processor.Ledger().Len(),
	}

	// Print JSON for the python plotter to consume
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)

	// Also save to file
	filename := fmt.Sprintf("results_%s.json", workload)
	file, _ := os.Create(filename)
	defer file.Close()
	json.NewEncoder(file).Encode(results)
}
