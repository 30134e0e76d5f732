package service

import (
	"errors"

	"github.com/punchamoorthee/txnproc/internal/ledger"
)

// Per-record rejection reasons. Every one of these skips the offending
// record and leaves ledger and journal untouched; none aborts the run.
var (
	ErrInvalidAmount        = ledger.ErrInvalidAmount
	ErrInsufficientFunds    = ledger.ErrInsufficientFunds
	ErrDuplicateTransaction = errors.New("transaction id already used")
	ErrAccountLocked        = errors.New("account locked")
	ErrUnknownTransaction   = errors.New("referenced transaction does not exist")
	ErrClientMismatch       = errors.New("referenced transaction belongs to another client")
	ErrInvalidDisputeState  = errors.New("invalid dispute state transition")
	ErrUnsupportedReference = errors.New("disputes against withdrawals are not supported")
)

// reason maps a rejection to the short label used for logging and metrics.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_tx"
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, ErrUnknownTransaction):
		return "unknown_tx"
	case errors.Is(err, ErrClientMismatch):
		return "client_mismatch"
	case errors.Is(err, ErrInvalidDisputeState):
		return "invalid_dispute_state"
	case errors.Is(err, ErrUnsupportedReference):
		return "unsupported_reference"
	}
	return "error"
}
