// Package csvio adapts the engine's typed records to the CSV wire formats:
// transaction rows in (`type,client,tx,amount`) and account rows out
// (`client,available,held,total,locked`).
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/txnproc/internal/models"
)

// RowError reports a malformed input row. It is recoverable: the caller
// skips the row and keeps reading.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader turns a CSV stream into typed transactions. A leading header row is
// skipped. Next returns io.EOF at the end of the stream, a *RowError for a
// malformed row, and any other error for an unreadable transport.
type Reader struct {
	csv     *csv.Reader
	started bool
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // amount column is optional
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next transaction in the stream.
func (r *Reader) Next() (models.Transaction, error) {
	for {
		rec, err := r.csv.Read()
		if err != nil {
			if err == io.EOF {
				return models.Transaction{}, io.EOF
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.started = true
				return models.Transaction{}, &RowError{Line: parseErr.Line, Err: err}
			}
			return models.Transaction{}, fmt.Errorf("reading input: %w", err)
		}
		// Quoted fields may span file lines; FieldPos gives the line the
		// record actually starts on.
		line, _ := r.csv.FieldPos(0)

		if !r.started {
			r.started = true
			if strings.EqualFold(strings.TrimSpace(rec[0]), "type") {
				continue
			}
		}

		tx, err := parseRecord(rec)
		if err != nil {
			return models.Transaction{}, &RowError{Line: line, Err: err}
		}
		return tx, nil
	}
}

func parseRecord(rec []string) (models.Transaction, error) {
	var tx models.Transaction
	if len(rec) < 3 || len(rec) > 4 {
		return tx, fmt.Errorf("expected 3 or 4 fields, got %d", len(rec))
	}

	txType, err := parseType(rec[0])
	if err != nil {
		return tx, err
	}
	tx.Type = txType

	client, err := strconv.ParseUint(strings.TrimSpace(rec[1]), 10, 16)
	if err != nil {
		return tx, fmt.Errorf("client id %q: %w", rec[1], err)
	}
	tx.Client = models.ClientID(client)

	id, err := strconv.ParseUint(strings.TrimSpace(rec[2]), 10, 32)
	if err != nil {
		return tx, fmt.Errorf("transaction id %q: %w", rec[2], err)
	}
	tx.Tx = models.TxID(id)

	amountField := ""
	if len(rec) > 3 {
		amountField = strings.TrimSpace(rec[3])
	}

	if !txType.HasAmount() {
		if amountField != "" {
			return tx, fmt.Errorf("%s rows must not carry an amount", txType)
		}
		return tx, nil
	}

	if amountField == "" {
		return tx, fmt.Errorf("%s rows require an amount", txType)
	}
	amount, err := decimal.NewFromString(amountField)
	if err != nil {
		return tx, fmt.Errorf("amount %q: %w", amountField, err)
	}
	// Normalize to the 4 fractional digits the format defines.
	tx.Amount = amount.Round(4)
	return tx, nil
}

func parseType(field string) (models.TxType, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "deposit":
		return models.TxDeposit, nil
	case "withdrawal":
		return models.TxWithdrawal, nil
	case "dispute":
		return models.TxDispute, nil
	case "resolve":
		return models.TxResolve, nil
	case "chargeback":
		return models.TxChargeback, nil
	}
	return 0, fmt.Errorf("unknown transaction type %q", field)
}
