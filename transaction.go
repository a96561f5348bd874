package brokerage

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType is a typed string identifying the kind of a transaction.
type TransactionType string

// Transaction types recorded in the account log.
const (
	TxDeposit    TransactionType = "DEPOSIT"
	TxWithdrawal TransactionType = "WITHDRAWAL"
	TxBuy        TransactionType = "BUY"
	TxSell       TransactionType = "SELL"
)

func (t TransactionType) String() string { return string(t) }

// IsCash reports whether the type moves cash without touching holdings.
func (t TransactionType) IsCash() bool { return t == TxDeposit || t == TxWithdrawal }

// IsTrade reports whether the type exchanges cash for a security position.
func (t TransactionType) IsTrade() bool { return t == TxBuy || t == TxSell }

// ParseTransactionType parses a string into a TransactionType.
// Matching is case-insensitive.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TxDeposit, TxWithdrawal, TxBuy, TxSell:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// symbolPattern matches a normalized security symbol.
var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// NormalizeSymbol trims and uppercases a symbol. It fails with
// ErrInvalidSymbol when the result is empty or contains characters
// outside A-Z, 0-9, '.' and '-'.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	return s, nil
}

// Transaction is one immutable record of the account log: created by a
// mutation operation, appended, and never changed afterwards. The zero
// value is not a valid record.
//
// symbol, quantity and price are set on BUY/SELL records; amount is set
// on DEPOSIT/WITHDRAWAL records. total is the signed cash effect and is
// always set.
type Transaction struct {
	id       string
	typ      TransactionType
	time     time.Time
	symbol   string
	quantity Quantity
	price    Money
	amount   Money
	total    Money
	note     string
}

func (t Transaction) ID() string            { return t.id }
func (t Transaction) Type() TransactionType { return t.typ }
func (t Transaction) Time() time.Time       { return t.time }
func (t Transaction) Symbol() string        { return t.symbol }
func (t Transaction) Quantity() Quantity    { return t.quantity }
func (t Transaction) Price() Money          { return t.price }
func (t Transaction) Amount() Money         { return t.amount }
func (t Transaction) Total() Money          { return t.total }
func (t Transaction) Note() string          { return t.note }

// Equal reports whether two records carry the same identity and content.
func (t Transaction) Equal(o Transaction) bool {
	return t.id == o.id &&
		t.typ == o.typ &&
		t.time.Equal(o.time) &&
		t.symbol == o.symbol &&
		t.quantity.Equal(o.quantity) &&
		t.price.Equal(o.price) &&
		t.amount.Equal(o.amount) &&
		t.total.Equal(o.total) &&
		t.note == o.note
}

// newTransactionID mints the random 128-bit token identifying a record.
func newTransactionID() string { return uuid.NewString() }

// newCashTransaction builds a DEPOSIT or WITHDRAWAL record. amount must
// already be validated positive.
func newCashTransaction(typ TransactionType, at time.Time, amount Money, note string) Transaction {
	total := amount
	if typ == TxWithdrawal {
		total = amount.Neg()
	}
	return Transaction{
		id:     newTransactionID(),
		typ:    typ,
		time:   at,
		amount: amount,
		total:  total,
		note:   note,
	}
}

// newTradeTransaction builds a BUY or SELL record. symbol must be
// normalized and quantity and price validated positive.
func newTradeTransaction(typ TransactionType, at time.Time, symbol string, quantity Quantity, price Money, note string) Transaction {
	total := price.Mul(quantity)
	if typ == TxBuy {
		total = total.Neg()
	}
	return Transaction{
		id:       newTransactionID(),
		typ:      typ,
		time:     at,
		symbol:   symbol,
		quantity: quantity,
		price:    price,
		total:    total,
		note:     note,
	}
}

// validate checks a decoded record for structural soundness: known type,
// UTC timestamp, the fields its type requires, and a total consistent
// with them. State-level invariants (chronology, funds, holdings) are
// enforced when the record is replayed into an account.
func (t Transaction) validate() error {
	if t.id == "" {
		return fmt.Errorf("record has no id")
	}
	if _, err := ParseTransactionType(string(t.typ)); err != nil {
		return err
	}
	if t.time.IsZero() || t.time.Location() != time.UTC {
		return fmt.Errorf("%w: record %s has no UTC timestamp", ErrInvalidTimestamp, t.id)
	}
	switch {
	case t.typ.IsCash():
		if t.symbol != "" || !t.quantity.IsZero() || !t.price.IsZero() {
			return fmt.Errorf("record %s: %s carries trade fields", t.id, t.typ)
		}
		if !t.amount.IsPositive() {
			return fmt.Errorf("%w: record %s", ErrNegativeAmount, t.id)
		}
		want := t.amount
		if t.typ == TxWithdrawal {
			want = t.amount.Neg()
		}
		if !t.total.Equal(want) {
			return fmt.Errorf("record %s: total %s does not match amount %s", t.id, t.total, t.amount)
		}
	case t.typ.IsTrade():
		if !t.amount.IsZero() {
			return fmt.Errorf("record %s: %s carries a cash amount", t.id, t.typ)
		}
		if norm, err := NormalizeSymbol(t.symbol); err != nil || norm != t.symbol {
			return fmt.Errorf("%w: record %s symbol %q", ErrInvalidSymbol, t.id, t.symbol)
		}
		if !t.quantity.IsPositive() {
			return fmt.Errorf("%w: record %s", ErrInvalidQuantity, t.id)
		}
		if !t.price.IsPositive() {
			return fmt.Errorf("%w: record %s has price %s", ErrPriceUnavailable, t.id, t.price)
		}
		want := t.price.Mul(t.quantity)
		if t.typ == TxBuy {
			want = want.Neg()
		}
		if !t.total.Equal(want) {
			return fmt.Errorf("record %s: total %s does not match %s x %s", t.id, t.total, t.quantity, t.price)
		}
	}
	return nil
}

// MarshalJSON renders the record as a single JSON object with stable key
// order, decimal fields as unquoted fixed-digit numbers, and the
// timestamp in RFC 3339 UTC.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.id)
	w.Append("type", t.typ)
	w.Append("time", t.time.Format(time.RFC3339Nano))
	if t.typ.IsTrade() {
		w.Append("symbol", t.symbol)
		w.Append("quantity", t.quantity)
		w.Append("price", t.price)
	} else {
		w.Append("amount", t.amount)
	}
	w.Append("total", t.total)
	w.Optional("note", t.note)
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string          `json:"id"`
		Type     TransactionType `json:"type"`
		Time     time.Time       `json:"time"`
		Symbol   string          `json:"symbol"`
		Quantity Quantity        `json:"quantity"`
		Price    Money           `json:"price"`
		Amount   Money           `json:"amount"`
		Total    Money           `json:"total"`
		Note     string          `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Transaction{
		id:       raw.ID,
		typ:      raw.Type,
		time:     raw.Time,
		symbol:   raw.Symbol,
		quantity: raw.Quantity,
		price:    raw.Price,
		amount:   raw.Amount,
		total:    raw.Total,
		note:     raw.Note,
	}
	return t.validate()
}

// TransactionFilter restricts the records yielded by Account.Transactions.
// Filters combine with AND; no filters means every record.
type TransactionFilter func(Transaction) bool

// Between keeps records whose timestamp falls within [start, end], both
// bounds inclusive. A zero start or end leaves that side open.
func Between(start, end time.Time) TransactionFilter {
	return func(tx Transaction) bool {
		if !start.IsZero() && tx.time.Before(start) {
			return false
		}
		if !end.IsZero() && tx.time.After(end) {
			return false
		}
		return true
	}
}

// OfType keeps records of any of the given types.
func OfType(types ...TransactionType) TransactionFilter {
	return func(tx Transaction) bool {
		return slices.Contains(types, tx.typ)
	}
}

// BySymbol keeps trade records for the given symbol. The argument is
// normalized first, so "aapl " matches AAPL records; an unnormalizable
// symbol matches nothing.
func BySymbol(symbol string) TransactionFilter {
	norm, err := NormalizeSymbol(symbol)
	if err != nil {
		return func(Transaction) bool { return false }
	}
	return func(tx Transaction) bool {
		return tx.symbol == norm
	}
}
