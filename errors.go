package brokerage

import "errors"

// Every rejection an account operation can return wraps one of these
// sentinels; callers discriminate with errors.Is. A rejected operation
// never leaves partial state behind.
var (
	// ErrInvalidOwner rejects an empty or blank owner at construction.
	ErrInvalidOwner = errors.New("invalid owner")
	// ErrInvalidCurrency rejects a currency code missing from the ISO-4217 table.
	ErrInvalidCurrency = errors.New("invalid currency")
	// ErrInvalidTimestamp rejects a timestamp that is not UTC-qualified.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrChronologyViolation rejects a timestamp earlier than the last recorded transaction.
	ErrChronologyViolation = errors.New("chronology violation")
	// ErrNegativeAmount rejects a non-positive monetary amount.
	ErrNegativeAmount = errors.New("non-positive amount")
	// ErrInvalidQuantity rejects a non-positive quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidSymbol rejects a symbol that is empty or carries disallowed
	// characters after normalization.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrInsufficientFunds rejects a withdrawal or purchase exceeding the cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientHoldings rejects a sale exceeding the held quantity.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	// ErrPriceUnavailable signals that no positive price could be resolved for a symbol.
	ErrPriceUnavailable = errors.New("price unavailable")
)
