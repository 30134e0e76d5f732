package ledger

import (
	"errors"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/txnproc/internal/models"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Account holds the funds and lock status of a single client. Total is
// derived, never stored: it is always Available + Held.
type Account struct {
	Client    models.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// Total returns Available + Held.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// State renders the account as an output row, recomputing Total.
func (a *Account) State() models.AccountState {
	return models.AccountState{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}

// Ledger maps client ids to accounts and owns every balance mutation.
// It is not safe for concurrent use; a run has exactly one writer.
type Ledger struct {
	accounts map[models.ClientID]*Account
	order    []models.ClientID
}

func New() *Ledger {
	return &Ledger{accounts: make(map[models.ClientID]*Account)}
}

// GetOrCreate returns the account for the given client, inserting a zeroed,
// unlocked one on first reference.
func (l *Ledger) GetOrCreate(client models.ClientID) *Account {
	if acc, ok := l.accounts[client]; ok {
		return acc
	}
	acc := &Account{Client: client}
	l.accounts[client] = acc
	l.order = append(l.order, client)
	return acc
}

// Get returns the account for the given client, or nil if it was never
// referenced.
func (l *Ledger) Get(client models.ClientID) *Account {
	return l.accounts[client]
}

// Len returns the number of accounts created so far.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// Credit adds a positive amount to the client's available funds.
func (l *Ledger) Credit(client models.ClientID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	acc := l.GetOrCreate(client)
	acc.Available = acc.Available.Add(amount)
	return nil
}

// Debit removes a positive amount from the client's available funds. It
// fails without touching the account if available funds do not cover it.
func (l *Ledger) Debit(client models.ClientID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	acc := l.GetOrCreate(client)
	if acc.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	acc.Available = acc.Available.Sub(amount)
	return nil
}

// Hold moves the amount from available to held funds. There is no floor
// check: the amount comes from a previously accepted deposit, and available
// may legitimately go negative if those funds were already withdrawn.
func (l *Ledger) Hold(client models.ClientID, amount decimal.Decimal) {
	acc := l.GetOrCreate(client)
	acc.Available = acc.Available.Sub(amount)
	acc.Held = acc.Held.Add(amount)
}

// Release moves the amount from held back to available funds.
func (l *Ledger) Release(client models.ClientID, amount decimal.Decimal) {
	acc := l.GetOrCreate(client)
	acc.Held = acc.Held.Sub(amount)
	acc.Available = acc.Available.Add(amount)
}

// Seize removes the amount from held funds permanently and locks the
// account.
func (l *Ledger) Seize(client models.ClientID, amount decimal.Decimal) {
	acc := l.GetOrCreate(client)
	acc.Held = acc.Held.Sub(amount)
	acc.Locked = true
}

// Snapshot yields one output row per account in insertion order. The
// sequence is lazy and restartable; callers needing a different ordering
// sort on their side.
func (l *Ledger) Snapshot() iter.Seq[models.AccountState] {
	return func(yield func(models.AccountState) bool) {
		for _, client := range l.order {
			if !yield(l.accounts[client].State()) {
				return
			}
		}
	}
}
