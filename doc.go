// Package brokerage implements a single-owner brokerage account as an
// append-only transaction ledger. It is designed to be exact, auditable,
// and replayable: every figure the account reports can be recomputed
// from its log.
//
// The core functionalities include:
//   - Exact arithmetic: Money (2 fractional digits) and Quantity
//     (6 fractional digits) are fixed-point decimals, re-quantized
//     half-up after every operation; binary floats never enter the
//     books.
//   - Ledger Management: deposits, withdrawals, purchases and sales are
//     validated, applied atomically, and appended as immutable records
//     in chronological order.
//   - Point-in-time replay: holdings, cash, and every derived metric can
//     be reconstructed as of any past instant by folding the log up to a
//     cutoff, while current-state queries read cached running totals.
//   - Valuation: a pluggable price source turns holdings into portfolio
//     value, equity, and profit-and-loss figures.
//   - Interchange: accounts round-trip through a human-readable JSONL
//     stream whose decoding enforces the same invariants as live
//     mutations.
//
// This package serves as the foundational logic for the `bkr`
// command-line tool, ensuring that all operations are consistent and
// based on a single source of truth.
package brokerage
