package brokerage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fractional precision of the two value types. Every constructor and
// arithmetic method re-quantizes its result to these scales, half-up
// (ties away from zero), so a Money or Quantity always carries its
// canonical digits and equality is well-defined.
const (
	moneyPlaces    = 2
	quantityPlaces = 6
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money is a monetary amount in the account's base currency, held as an
// exact decimal with 2 fractional digits. The zero value is 0.00.
type Money struct {
	value decimal.Decimal
}

// M creates a Money from a numeric value, quantized to 2 fractional digits.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value).Round(moneyPlaces)}
}

// ParseMoney parses an exact decimal string ("1500.25") into a Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return Money{value: d.Round(moneyPlaces)}, nil
}

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value).Round(moneyPlaces)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value).Round(moneyPlaces)} }

// Mul returns the cash value of q units at price m, quantized.
func (m Money) Mul(q Quantity) Money {
	return Money{value: m.value.Mul(q.value).Round(moneyPlaces)}
}

// String returns the canonical fixed-digit form, e.g. "8500.00".
func (m Money) String() string { return m.value.StringFixed(moneyPlaces) }

// SignedString is String with an explicit sign on positive values,
// for profit and loss columns.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON renders the value as an unquoted JSON number with all
// canonical digits ("150.00", not "150").
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if err := m.value.UnmarshalJSON(data); err != nil {
		return err
	}
	m.value = m.value.Round(moneyPlaces)
	return nil
}
