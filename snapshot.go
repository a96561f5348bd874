package brokerage

import (
	"fmt"
	"time"
)

// Snapshot is an immutable point-in-time view of an account: the records
// visible at capture plus a cutoff instant. Every query on a snapshot is
// a pure fold over the records up to the cutoff, so repeated calls
// always agree and never touch the live account state.
type Snapshot struct {
	owner    string
	currency string
	asOf     time.Time
	records  []Transaction
	pricer   PriceSource
}

// Snapshot captures a view of the account as of now.
func (a *Account) Snapshot() *Snapshot {
	s, _ := a.SnapshotAt(time.Time{})
	return s
}

// SnapshotAt captures a view of the account as of the given cutoff. A
// zero cutoff means "now"; otherwise it must be UTC-qualified.
func (a *Account) SnapshotAt(asOf time.Time) (*Snapshot, error) {
	if asOf.IsZero() {
		asOf = a.now()
	} else if asOf.Location() != time.UTC {
		return nil, fmt.Errorf("%w: %s is not UTC-qualified", ErrInvalidTimestamp, asOf)
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return &Snapshot{
		owner:    a.owner,
		currency: a.currency,
		asOf:     asOf,
		records:  a.records[:len(a.records):len(a.records)],
		pricer:   a.pricer,
	}, nil
}

// AsOf returns the snapshot's cutoff instant.
func (s *Snapshot) AsOf() time.Time { return s.asOf }

// Owner returns the account owner identifier.
func (s *Snapshot) Owner() string { return s.owner }

// Currency returns the account's base currency code.
func (s *Snapshot) Currency() string { return s.currency }

// upTo folds over the records within the cutoff. The log is ordered by
// time, so the fold stops at the first record beyond it.
func (s *Snapshot) upTo(visit func(Transaction)) {
	for _, tx := range s.records {
		if tx.time.After(s.asOf) {
			break
		}
		visit(tx)
	}
}

// Cash returns the cash balance at the cutoff, the fold of all total
// deltas.
func (s *Snapshot) Cash() Money {
	var cash Money
	s.upTo(func(tx Transaction) {
		cash = cash.Add(tx.total)
	})
	return cash
}

// Holdings returns the positions at the cutoff. Positions sold down to
// exactly zero are absent.
func (s *Snapshot) Holdings() map[string]Quantity {
	holdings := make(map[string]Quantity)
	s.upTo(func(tx Transaction) {
		switch tx.typ {
		case TxBuy:
			holdings[tx.symbol] = holdings[tx.symbol].Add(tx.quantity)
		case TxSell:
			if left := holdings[tx.symbol].Sub(tx.quantity); left.IsZero() {
				delete(holdings, tx.symbol)
			} else {
				holdings[tx.symbol] = left
			}
		}
	})
	return holdings
}

// NetContributions returns deposits minus withdrawals up to the cutoff,
// independent of trading activity.
func (s *Snapshot) NetContributions() Money {
	var net Money
	s.upTo(func(tx Transaction) {
		switch tx.typ {
		case TxDeposit:
			net = net.Add(tx.amount)
		case TxWithdrawal:
			net = net.Sub(tx.amount)
		}
	})
	return net
}

// TransactionCount returns the number of records within the cutoff.
func (s *Snapshot) TransactionCount() int {
	var n int
	s.upTo(func(Transaction) { n++ })
	return n
}

// firstDeposit returns the amount of the first DEPOSIT in the whole log,
// regardless of the cutoff, and a zero Money when no deposit exists.
func (s *Snapshot) firstDeposit() Money {
	for _, tx := range s.records {
		if tx.typ == TxDeposit {
			return tx.amount
		}
	}
	return Money{}
}

// HoldingsAt returns the positions as of the cutoff by replaying the log.
func (a *Account) HoldingsAt(asOf time.Time) (map[string]Quantity, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return nil, err
	}
	return s.Holdings(), nil
}

// CashBalanceAt returns the cash balance as of the cutoff by replaying
// the log.
func (a *Account) CashBalanceAt(asOf time.Time) (Money, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return Money{}, err
	}
	return s.Cash(), nil
}

// NetContributions returns current deposits minus withdrawals.
func (a *Account) NetContributions() Money {
	return a.Snapshot().NetContributions()
}

// NetContributionsAt returns deposits minus withdrawals as of the cutoff.
func (a *Account) NetContributionsAt(asOf time.Time) (Money, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return Money{}, err
	}
	return s.NetContributions(), nil
}
