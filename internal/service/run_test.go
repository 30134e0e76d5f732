package service

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchamoorthee/txnproc/internal/csvio"
	"github.com/punchamoorthee/txnproc/internal/ledger"
	"github.com/punchamoorthee/txnproc/internal/models"
)

func TestRunSkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"deposit,1,1,5.0",
		"deposit,1",                // too few fields
		"teleport,1,2,1.0",         // unknown type
		"deposit,one,3,1.0",        // bad client id
		"withdrawal,1,4",           // missing amount
		"dispute,1,1,2.5",          // dispute must not carry an amount
		"withdrawal,1,5,2.0",       // fine
		"withdrawal, 1, 6, 1.0000", // whitespace tolerated
	}, "\n")

	p := newTestProcessor(LockedAllowDisputes)
	require.NoError(t, p.Run(csvio.NewReader(strings.NewReader(input))))

	assertAccount(t, p, 1, "2", "0", false)
	stats := p.Stats()
	assert.Equal(t, int64(3), stats.Applied)
	assert.Equal(t, int64(0), stats.Rejected)
	assert.Equal(t, int64(5), stats.Malformed)
}

func TestRunContinuesPastRejections(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"deposit,1,1,5.0",
		"withdrawal,1,2,100.0", // insufficient funds
		"deposit,1,1,5.0",      // duplicate tx id
		"deposit,2,3,7.5",
	}, "\n")

	p := newTestProcessor(LockedAllowDisputes)
	require.NoError(t, p.Run(csvio.NewReader(strings.NewReader(input))))

	assertAccount(t, p, 1, "5", "0", false)
	assertAccount(t, p, 2, "7.5", "0", false)
	assert.Equal(t, int64(2), p.Stats().Rejected)
}

// brokenSource fails mid-stream with a transport error.
type brokenSource struct {
	records []models.Transaction
	err     error
}

func (s *brokenSource) Next() (models.Transaction, error) {
	if len(s.records) == 0 {
		return models.Transaction{}, s.err
	}
	tx := s.records[0]
	s.records = s.records[1:]
	return tx, nil
}

func TestRunFatalOnTransportError(t *testing.T) {
	transportErr := errors.New("disk gone")
	src := &brokenSource{
		records: []models.Transaction{deposit(1, 1, "5.0")},
		err:     transportErr,
	}

	p := newTestProcessor(LockedAllowDisputes)
	err := p.Run(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)

	// Records before the failure were applied.
	assertAccount(t, p, 1, "5", "0", false)
}

func TestRunEmptyStream(t *testing.T) {
	p := NewProcessor(ledger.New(), LockedAllowDisputes, slog.New(slog.DiscardHandler))
	require.NoError(t, p.Run(csvio.NewReader(strings.NewReader(""))))
	assert.Equal(t, 0, p.Ledger().Len())
}
