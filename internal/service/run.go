package service

import (
	"errors"
	"fmt"
	"io"

	"github.com/punchamoorthee/txnproc/internal/csvio"
	"github.com/punchamoorthee/txnproc/internal/models"
)

// RecordSource is an ordered, possibly fallible sequence of transactions.
// Next returns io.EOF when the sequence is exhausted.
type RecordSource interface {
	Next() (models.Transaction, error)
}

// Run consumes the source to exhaustion, applying each record in arrival
// order. Malformed rows and rejected transactions are logged and skipped;
// only a transport failure aborts the run.
func (p *Processor) Run(src RecordSource) error {
	for {
		tx, err := src.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			var rowErr *csvio.RowError
			if errors.As(err, &rowErr) {
				p.stats.Malformed++
				rowsSkipped.Inc()
				p.logger.Warn("skipping malformed row", "line", rowErr.Line, "error", rowErr.Err.Error())
				continue
			}
			return fmt.Errorf("transaction stream: %w", err)
		}

		// Apply already logged and counted any rejection.
		p.Apply(tx)
	}
}
