package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
)

// Generates a well-formed transaction CSV for load testing the engine.
// Deposits dominate; a fraction of deposits get disputed and then resolved
// or charged back.
var (
	transactions int
	clients      int
	seed         int64
	outPath      string
)

const (
	withdrawalRatio = 0.30
	disputeRatio    = 0.05
	resolveRatio    = 0.60 // of disputed deposits; the rest charge back
)

func init() {
	flag.IntVar(&transactions, "transactions", 100000, "Number of deposit/withdrawal rows")
	flag.IntVar(&clients, "clients", 1000, "Number of distinct clients")
	flag.Int64Var(&seed, "seed", 42, "RNG seed for reproducible files")
	flag.StringVar(&outPath, "out", "transactions.csv", "Output file path")
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(seed))

	file, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Unable to create output file: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Write([]string{"type", "client", "tx", "amount"})

	log.Printf("Generating %d transactions for %d clients...", transactions, clients)

	nextTx := uint32(1)
	written := 0
	for i := 0; i < transactions; i++ {
		client := rng.Intn(clients) + 1
		amount := fmt.Sprintf("%.4f", rng.Float64()*1000+0.0001)

		if rng.Float64() < withdrawalRatio {
			w.Write(row("withdrawal", client, nextTx, amount))
			nextTx++
			written++
			continue
		}

		depositTx := nextTx
		w.Write(row("deposit", client, depositTx, amount))
		nextTx++
		written++

		if rng.Float64() < disputeRatio {
			w.Write(row("dispute", client, depositTx, ""))
			if rng.Float64() < resolveRatio {
				w.Write(row("resolve", client, depositTx, ""))
			} else {
				w.Write(row("chargeback", client, depositTx, ""))
			}
			written += 2
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Write failed: %v", err)
	}
	log.Printf("Wrote %d rows to %s", written, outPath)
}

func row(txType string, client int, tx uint32, amount string) []string {
	return []string{txType, strconv.Itoa(client), strconv.FormatUint(uint64(tx), 10), amount}
}
