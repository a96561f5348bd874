package brokerage

import (
	"errors"
	"fmt"
)

// PriceSource provides the current unit price for a symbol. It is the
// only external capability the account consumes: injected at
// construction, swappable through SetPriceSource, and the sole call that
// may block or fail on its own terms. Implementations must return an
// error for an unknown symbol, never a zero price.
type PriceSource interface {
	PriceFor(symbol string) (Money, error)
}

// PriceFunc adapts a plain function to the PriceSource interface.
type PriceFunc func(symbol string) (Money, error)

func (f PriceFunc) PriceFor(symbol string) (Money, error) { return f(symbol) }

// StaticPrices is a fixed in-memory price table keyed by normalized
// symbol.
type StaticPrices map[string]Money

func (p StaticPrices) PriceFor(symbol string) (Money, error) {
	px, ok := p[symbol]
	if !ok {
		return Money{}, fmt.Errorf("%w: no quote for %q", ErrPriceUnavailable, symbol)
	}
	return px, nil
}

// DefaultPrices returns the built-in demonstration table every new
// account starts with.
func DefaultPrices() StaticPrices {
	return StaticPrices{
		"AAPL":  M(150.00),
		"TSLA":  M(250.00),
		"GOOGL": M(2800.00),
	}
}

// lookupPrice asks the source for a quote and maps every failure mode,
// including a non-positive quote, to ErrPriceUnavailable.
func lookupPrice(src PriceSource, symbol string) (Money, error) {
	px, err := src.PriceFor(symbol)
	if err != nil {
		if errors.Is(err, ErrPriceUnavailable) {
			return Money{}, err
		}
		return Money{}, fmt.Errorf("%w: %s: %v", ErrPriceUnavailable, symbol, err)
	}
	if !px.IsPositive() {
		return Money{}, fmt.Errorf("%w: non-positive quote %s for %s", ErrPriceUnavailable, px, symbol)
	}
	return px, nil
}

// resolvePrice returns the explicit price when one is supplied (non-zero)
// or falls back to the source. An explicit negative price is rejected the
// same way an unusable quote is.
func resolvePrice(src PriceSource, symbol string, price Money) (Money, error) {
	if price.IsZero() {
		return lookupPrice(src, symbol)
	}
	if !price.IsPositive() {
		return Money{}, fmt.Errorf("%w: explicit price %s for %s", ErrPriceUnavailable, price, symbol)
	}
	return price, nil
}
