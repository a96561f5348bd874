package brokerage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is a number of units of a security, held as an exact decimal
// with 6 fractional digits. The zero value is 0.000000.
type Quantity struct {
	value decimal.Decimal
}

// Q creates a Quantity from a numeric value, quantized to 6 fractional digits.
func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value).Round(quantityPlaces)}
}

// ParseQuantity parses an exact decimal string ("12.5") into a Quantity.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{value: d.Round(quantityPlaces)}, nil
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }

// binary operators.
func (q Quantity) Add(p Quantity) Quantity {
	return Quantity{value: q.value.Add(p.value).Round(quantityPlaces)}
}
func (q Quantity) Sub(p Quantity) Quantity {
	return Quantity{value: q.value.Sub(p.value).Round(quantityPlaces)}
}

// String returns the canonical fixed-digit form, e.g. "10.000000".
func (q Quantity) String() string { return q.value.StringFixed(quantityPlaces) }

// MarshalJSON renders the value as an unquoted JSON number with all
// canonical digits.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if err := q.value.UnmarshalJSON(data); err != nil {
		return err
	}
	q.value = q.value.Round(quantityPlaces)
	return nil
}
