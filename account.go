package brokerage

import (
	"fmt"
	"iter"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is used when NewAccount is given an empty currency code.
const DefaultCurrency = "USD"

// Account is a single-owner brokerage ledger: an append-only log of
// transactions plus cached running totals for cash and holdings. The
// cached totals always equal the fold of the log, so current-state
// queries cost O(1) while point-in-time queries replay the log.
//
// One lock guards cash, holdings and the log as a unit. Mutations are
// all-or-nothing: a rejected operation leaves no trace.
type Account struct {
	mu sync.RWMutex

	owner    string
	currency string
	pricer   PriceSource
	now      func() time.Time

	records  []Transaction
	cash     Money
	holdings map[string]Quantity
}

// NewAccount creates an empty account for owner. currency is an ISO-4217
// code, defaulting to USD when empty; it must exist in the currency
// table. The account starts with the built-in static price table, see
// SetPriceSource.
func NewAccount(owner, currency string) (*Account, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: owner must be a non-empty string", ErrInvalidOwner)
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if money.GetCurrency(currency) == nil {
		return nil, fmt.Errorf("%w: unknown code %q", ErrInvalidCurrency, currency)
	}
	return &Account{
		owner:    owner,
		currency: currency,
		pricer:   DefaultPrices(),
		now:      func() time.Time { return time.Now().UTC() },
		holdings: make(map[string]Quantity),
	}, nil
}

// Owner returns the account owner identifier.
func (a *Account) Owner() string { return a.owner }

// Currency returns the account's base currency code.
func (a *Account) Currency() string { return a.currency }

// SetPriceSource replaces the price-lookup capability used to resolve
// trade prices and value holdings. A nil source restores the built-in
// static table.
func (a *Account) SetPriceSource(src PriceSource) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if src == nil {
		src = DefaultPrices()
	}
	a.pricer = src
}

// Deposit adds cash to the account and appends a DEPOSIT record. A zero
// at means "now"; otherwise at must be UTC-qualified and not precede the
// last record.
func (a *Account) Deposit(amount Money, at time.Time, note string) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	at, err := a.resolveTime(at)
	if err != nil {
		return Transaction{}, err
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: deposit of %s", ErrNegativeAmount, amount)
	}
	tx := newCashTransaction(TxDeposit, at, amount, note)
	a.commit(tx)
	return tx, nil
}

// Withdraw removes cash from the account and appends a WITHDRAWAL
// record. The balance must cover the amount.
func (a *Account) Withdraw(amount Money, at time.Time, note string) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	at, err := a.resolveTime(at)
	if err != nil {
		return Transaction{}, err
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: withdrawal of %s", ErrNegativeAmount, amount)
	}
	if a.cash.LessThan(amount) {
		return Transaction{}, fmt.Errorf("%w: cash %s cannot cover withdrawal of %s", ErrInsufficientFunds, a.cash, amount)
	}
	tx := newCashTransaction(TxWithdrawal, at, amount, note)
	a.commit(tx)
	return tx, nil
}

// Buy exchanges cash for quantity units of symbol and appends a BUY
// record. A zero price means "resolve through the price source"; an
// explicit price must be positive. The balance must cover the cost.
func (a *Account) Buy(symbol string, quantity Quantity, price Money, at time.Time, note string) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	at, err := a.resolveTime(at)
	if err != nil {
		return Transaction{}, err
	}
	if !quantity.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: buy of %s", ErrInvalidQuantity, quantity)
	}
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return Transaction{}, err
	}
	px, err := resolvePrice(a.pricer, sym, price)
	if err != nil {
		return Transaction{}, err
	}
	cost := px.Mul(quantity)
	if a.cash.LessThan(cost) {
		return Transaction{}, fmt.Errorf("%w: cash %s cannot cover %s for %s %s", ErrInsufficientFunds, a.cash, cost, quantity, sym)
	}
	tx := newTradeTransaction(TxBuy, at, sym, quantity, px, note)
	a.commit(tx)
	return tx, nil
}

// Sell exchanges quantity units of symbol for cash and appends a SELL
// record. The position must cover the quantity; a position sold down to
// exactly zero is removed from holdings.
func (a *Account) Sell(symbol string, quantity Quantity, price Money, at time.Time, note string) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	at, err := a.resolveTime(at)
	if err != nil {
		return Transaction{}, err
	}
	if !quantity.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: sell of %s", ErrInvalidQuantity, quantity)
	}
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return Transaction{}, err
	}
	if held := a.holdings[sym]; held.LessThan(quantity) {
		return Transaction{}, fmt.Errorf("%w: %s of %s held, cannot sell %s", ErrInsufficientHoldings, held, sym, quantity)
	}
	px, err := resolvePrice(a.pricer, sym, price)
	if err != nil {
		return Transaction{}, err
	}
	tx := newTradeTransaction(TxSell, at, sym, quantity, px, note)
	a.commit(tx)
	return tx, nil
}

// resolveTime applies the timestamp policy: a zero instant means "now";
// anything else must carry the time.UTC location itself (t.UTC() does,
// an equivalent fixed zone does not) and may not precede the last
// appended record. Equal timestamps are allowed.
func (a *Account) resolveTime(at time.Time) (time.Time, error) {
	if at.IsZero() {
		at = a.now()
	} else if at.Location() != time.UTC {
		return time.Time{}, fmt.Errorf("%w: %s is not UTC-qualified", ErrInvalidTimestamp, at)
	}
	if n := len(a.records); n > 0 {
		if last := a.records[n-1].time; at.Before(last) {
			return time.Time{}, fmt.Errorf("%w: %s precedes last transaction at %s", ErrChronologyViolation, at, last)
		}
	}
	return at, nil
}

// commit applies a fully validated transaction to the cached state and
// appends it to the log. Callers hold the write lock.
func (a *Account) commit(tx Transaction) {
	a.cash = a.cash.Add(tx.total)
	switch tx.typ {
	case TxBuy:
		a.holdings[tx.symbol] = a.holdings[tx.symbol].Add(tx.quantity)
	case TxSell:
		if left := a.holdings[tx.symbol].Sub(tx.quantity); left.IsZero() {
			delete(a.holdings, tx.symbol)
		} else {
			a.holdings[tx.symbol] = left
		}
	}
	a.records = append(a.records, tx)
}

// replay validates a decoded record against the account invariants and
// commits it. This is the decode path: the record keeps its id and
// timestamp, but chronology, funds and holdings are enforced exactly as
// for a live mutation.
func (a *Account) replay(tx Transaction) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := tx.validate(); err != nil {
		return err
	}
	if _, err := a.resolveTime(tx.time); err != nil {
		return err
	}
	switch tx.typ {
	case TxWithdrawal, TxBuy:
		if out := tx.total.Neg(); a.cash.LessThan(out) {
			return fmt.Errorf("%w: cash %s cannot cover record %s", ErrInsufficientFunds, a.cash, tx.id)
		}
	}
	if tx.typ == TxSell {
		if held := a.holdings[tx.symbol]; held.LessThan(tx.quantity) {
			return fmt.Errorf("%w: %s of %s held, record %s sells %s", ErrInsufficientHoldings, held, tx.symbol, tx.id, tx.quantity)
		}
	}
	a.commit(tx)
	return nil
}

// CashBalance returns the current cash balance, a cached fold of all
// total deltas.
func (a *Account) CashBalance() Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cash
}

// Holdings returns a copy of the current positions. Symbols sold down to
// zero are absent.
func (a *Account) Holdings() map[string]Quantity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return maps.Clone(a.holdings)
}

// GetTransaction returns the record with the given id.
func (a *Account) GetTransaction(id string) (Transaction, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, tx := range a.records {
		if tx.id == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Transactions returns a lazy iterator over the log in original order,
// yielding the records accepted by every filter. The view is captured
// when Transactions is called, so ranging twice yields the same records
// even while the account keeps appending.
func (a *Account) Transactions(filters ...TransactionFilter) iter.Seq[Transaction] {
	view := a.view()
	return func(yield func(Transaction) bool) {
		for _, tx := range view {
			accepted := true
			for _, filter := range filters {
				if !filter(tx) {
					accepted = false
					break
				}
			}
			if !accepted {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// view captures a stable full-capacity-capped slice of the log. Appended
// records land beyond the cap, so the view never changes under a reader.
func (a *Account) view() []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.records[:len(a.records):len(a.records)]
}
