package service

import (
	"fmt"
	"log/slog"

	"github.com/punchamoorthee/txnproc/internal/ledger"
	"github.com/punchamoorthee/txnproc/internal/models"
	"github.com/shopspring/decimal"
)

// DisputeState tracks the lifecycle of a journaled deposit.
//
//	Clean --dispute--> Disputed --resolve--> Clean
//	                   Disputed --chargeback--> ChargedBack (terminal)
type DisputeState int

const (
	StateClean DisputeState = iota
	StateDisputed
	StateChargedBack
)

// LockedPolicy decides what a locked account may still process. Deposits
// and withdrawals are always rejected once locked; the policy only governs
// the dispute family.
type LockedPolicy int

const (
	// LockedAllowDisputes keeps processing dispute/resolve/chargeback on a
	// locked account. Default: a lock stops money movement in and out, not
	// the settlement of other open disputes.
	LockedAllowDisputes LockedPolicy = iota

	// LockedRejectAll refuses every transaction once the account is locked.
	LockedRejectAll
)

// journalEntry is the dispute bookkeeping for one accepted deposit.
type journalEntry struct {
	client models.ClientID
	amount decimal.Decimal
	state  DisputeState
}

// Stats counts per-record outcomes over a run.
type Stats struct {
	Applied   int64
	Rejected  int64
	Malformed int64
}

// Processor applies transactions one at a time against a Ledger it owns for
// the duration of the run. Only deposits are journaled: they are the only
// referenceable history for the dispute family.
type Processor struct {
	ledger  *ledger.Ledger
	journal map[models.TxID]*journalEntry
	seen    map[models.TxID]models.TxType
	policy  LockedPolicy
	logger  *slog.Logger
	stats   Stats
}

func NewProcessor(l *ledger.Ledger, policy LockedPolicy, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		ledger:  l,
		journal: make(map[models.TxID]*journalEntry),
		seen:    make(map[models.TxID]models.TxType),
		policy:  policy,
		logger:  logger,
	}
}

// Ledger returns the ledger the processor mutates.
func (p *Processor) Ledger() *ledger.Ledger {
	return p.ledger
}

// Stats returns the outcome counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

// Apply runs one transaction through the state machine. On error the
// balances and journal are exactly as they were before the call. The
// referenced client's account is created (zeroed) regardless of outcome: any
// record referencing a client id brings the account into existence.
func (p *Processor) Apply(tx models.Transaction) error {
	p.ledger.GetOrCreate(tx.Client)

	var err error
	switch tx.Type {
	case models.TxDeposit:
		err = p.deposit(tx)
	case models.TxWithdrawal:
		err = p.withdrawal(tx)
	case models.TxDispute:
		err = p.dispute(tx)
	case models.TxResolve:
		err = p.resolve(tx)
	case models.TxChargeback:
		err = p.chargeback(tx)
	default:
		err = fmt.Errorf("unknown transaction type %d", tx.Type)
	}

	if err != nil {
		p.stats.Rejected++
		txProcessed.WithLabelValues(tx.Type.String(), reason(err)).Inc()
		p.logger.Warn("transaction rejected",
			"type", tx.Type.String(),
			"client", tx.Client,
			"tx", tx.Tx,
			"error", err.Error(),
		)
		return err
	}

	p.stats.Applied++
	txProcessed.WithLabelValues(tx.Type.String(), "applied").Inc()
	return nil
}

func (p *Processor) deposit(tx models.Transaction) error {
	if _, ok := p.seen[tx.Tx]; ok {
		return ErrDuplicateTransaction
	}
	if p.ledger.GetOrCreate(tx.Client).Locked {
		return ErrAccountLocked
	}
	if err := p.ledger.Credit(tx.Client, tx.Amount); err != nil {
		return err
	}
	p.seen[tx.Tx] = models.TxDeposit
	p.journal[tx.Tx] = &journalEntry{client: tx.Client, amount: tx.Amount, state: StateClean}
	return nil
}

func (p *Processor) withdrawal(tx models.Transaction) error {
	if _, ok := p.seen[tx.Tx]; ok {
		return ErrDuplicateTransaction
	}
	if p.ledger.GetOrCreate(tx.Client).Locked {
		return ErrAccountLocked
	}
	if err := p.ledger.Debit(tx.Client, tx.Amount); err != nil {
		return err
	}
	p.seen[tx.Tx] = models.TxWithdrawal
	return nil
}

// lookup resolves a dispute-family reference to its journal entry, applying
// the shared precondition checks.
func (p *Processor) lookup(tx models.Transaction) (*journalEntry, error) {
	refType, ok := p.seen[tx.Tx]
	if !ok {
		return nil, ErrUnknownTransaction
	}
	if refType == models.TxWithdrawal {
		return nil, ErrUnsupportedReference
	}
	entry := p.journal[tx.Tx]
	if entry.client != tx.Client {
		return nil, ErrClientMismatch
	}
	if p.policy == LockedRejectAll && p.ledger.GetOrCreate(tx.Client).Locked {
		return nil, ErrAccountLocked
	}
	return entry, nil
}

func (p *Processor) dispute(tx models.Transaction) error {
	entry, err := p.lookup(tx)
	if err != nil {
		return err
	}
	if entry.state != StateClean {
		return ErrInvalidDisputeState
	}
	p.ledger.Hold(entry.client, entry.amount)
	entry.state = StateDisputed
	return nil
}

func (p *Processor) resolve(tx models.Transaction) error {
	entry, err := p.lookup(tx)
	if err != nil {
		return err
	}
	if entry.state != StateDisputed {
		return ErrInvalidDisputeState
	}
	p.ledger.Release(entry.client, entry.amount)
	entry.state = StateClean
	return nil
}

func (p *Processor) chargeback(tx models.Transaction) error {
	entry, err := p.lookup(tx)
	if err != nil {
		return err
	}
	if entry.state != StateDisputed {
		return ErrInvalidDisputeState
	}
	p.ledger.Seize(entry.client, entry.amount)
	entry.state = StateChargedBack
	return nil
}
