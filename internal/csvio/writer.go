package csvio

import (
	"encoding/csv"
	"io"
	"iter"
	"slices"
	"strconv"

	"github.com/punchamoorthee/txnproc/internal/models"
)

// WriteSnapshot renders account states as CSV, sorted by client id so output
// is deterministic and diffable. Decimal fields print with up to 4
// fractional digits, no trailing zeros.
func WriteSnapshot(w io.Writer, snapshot iter.Seq[models.AccountState]) error {
	rows := slices.Collect(snapshot)
	slices.SortFunc(rows, func(a, b models.AccountState) int {
		return int(a.Client) - int(b.Client)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.Client), 10),
			row.Available.String(),
			row.Held.String(),
			row.Total.String(),
			strconv.FormatBool(row.Locked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
