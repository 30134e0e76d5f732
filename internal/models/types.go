package models

import (
	"github.com/shopspring/decimal"
)

// ClientID identifies an account. The input format constrains it to the
// unsigned 16-bit range.
type ClientID uint16

// TxID identifies a deposit or withdrawal. Dispute-family records carry the
// TxID of the record they reference.
type TxID uint32

// TxType enumerates the five supported transaction kinds.
type TxType int

const (
	TxDeposit TxType = iota
	TxWithdrawal
	TxDispute
	TxResolve
	TxChargeback
)

func (t TxType) String() string {
	switch t {
	case TxDeposit:
		return "deposit"
	case TxWithdrawal:
		return "withdrawal"
	case TxDispute:
		return "dispute"
	case TxResolve:
		return "resolve"
	case TxChargeback:
		return "chargeback"
	}
	return "unknown"
}

// HasAmount reports whether records of this type carry an amount column.
// Dispute-family records reference a prior deposit's amount instead.
func (t TxType) HasAmount() bool {
	return t == TxDeposit || t == TxWithdrawal
}

// Transaction is one typed record from the input stream. Amount is the zero
// decimal for dispute-family records.
type Transaction struct {
	Type   TxType
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

// AccountState is one row of the final output: the snapshot of a single
// account after all transactions are applied. Total is recomputed at
// emission time and always equals Available + Held.
type AccountState struct {
	Client    ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}
