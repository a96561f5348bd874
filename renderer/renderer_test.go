package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/averlon/brokerage"
)

func TestDisplay(t *testing.T) {
	testCases := []struct {
		name     string
		amount   brokerage.Money
		currency string
		want     string
	}{
		{name: "dollars", amount: brokerage.M(8500), currency: "USD", want: "$8,500.00"},
		{name: "negative", amount: brokerage.M(-250), currency: "USD", want: "-$250.00"},
		{name: "cents", amount: brokerage.M(0.05), currency: "USD", want: "$0.05"},
		{name: "large", amount: brokerage.M(1234567.89), currency: "USD", want: "$1,234,567.89"},
		{name: "unknown code", amount: brokerage.M(10), currency: "ZZZ", want: "10.00 ZZZ"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := display(tc.amount, tc.currency); got != tc.want {
				t.Errorf("display(%s, %s) = %q, want %q", tc.amount, tc.currency, got, tc.want)
			}
		})
	}
}

func TestSignedDisplay(t *testing.T) {
	if got := signedDisplay(brokerage.M(50), "USD"); got != "+$50.00" {
		t.Errorf("signedDisplay(50) = %q, want +$50.00", got)
	}
	if got := signedDisplay(brokerage.M(-250), "USD"); got != "-$250.00" {
		t.Errorf("signedDisplay(-250) = %q, want -$250.00", got)
	}
	if got := signedDisplay(brokerage.M(0), "USD"); got != "$0.00" {
		t.Errorf("signedDisplay(0) = %q, want $0.00", got)
	}
}

// testLedger builds a small account whose reports are asserted below.
func testLedger(t *testing.T) *brokerage.Account {
	t.Helper()
	a, err := brokerage.NewAccount("ana", "USD")
	if err != nil {
		t.Fatalf("NewAccount() returned an unexpected error: %v", err)
	}
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	if _, err := a.Deposit(brokerage.M(10000), at, "seed"); err != nil {
		t.Fatalf("Deposit() returned an unexpected error: %v", err)
	}
	if _, err := a.Buy("AAPL", brokerage.Q(10), brokerage.M(140), at.Add(time.Minute), ""); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}
	return a
}

func TestStatementMarkdown(t *testing.T) {
	a := testLedger(t)
	stats, err := a.StatsAt(time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("StatsAt() returned an unexpected error: %v", err)
	}

	got := StatementMarkdown(stats)
	for _, want := range []string{
		"Account Statement for ana",
		"As of 2025-03-10 10:00:00 UTC, in USD.",
		"$8,600.00",  // cash
		"$1,500.00",  // portfolio value, 10 AAPL at the built-in 150.00
		"$10,100.00", // equity
		"$10,000.00", // net contributions
		"+$100.00",   // bought below the quote
		"AAPL",
		"10.000000",
		"2 transactions across 1 open positions.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("statement does not contain %q:\n%s", want, got)
		}
	}
}

func TestLogMarkdown(t *testing.T) {
	a := testLedger(t)

	got := LogMarkdown(a.Currency(), a.Transactions())
	for _, want := range []string{
		"## Transaction Log",
		"| Time | Type | Detail | Total | Note |",
		"2025-03-10 09:00:00 UTC | DEPOSIT |  | +$10,000.00 | seed |",
		"2025-03-10 09:01:00 UTC | BUY | 10.000000 AAPL @ $140.00 | -$1,400.00 |  |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("log does not contain %q:\n%s", want, got)
		}
	}
}

func TestLogMarkdown_Empty(t *testing.T) {
	a, err := brokerage.NewAccount("ana", "USD")
	if err != nil {
		t.Fatalf("NewAccount() returned an unexpected error: %v", err)
	}
	if got := LogMarkdown(a.Currency(), a.Transactions()); !strings.Contains(got, "No transactions.") {
		t.Errorf("empty log = %q, want a 'No transactions.' notice", got)
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	holdings := map[string]brokerage.Quantity{
		"AAPL": brokerage.Q(5),
		"TSLA": brokerage.Q(2),
	}
	prices := brokerage.StaticPrices{"AAPL": brokerage.M(150), "TSLA": brokerage.M(250)}

	got := HoldingsMarkdown("USD", holdings, prices)
	for _, want := range []string{
		"| AAPL | 5.000000 | $150.00 | $750.00 |",
		"| TSLA | 2.000000 | $250.00 | $500.00 |",
		"Total value: $1,250.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("holdings report does not contain %q:\n%s", want, got)
		}
	}

	// AAPL comes before TSLA whatever the map iteration order.
	if strings.Index(got, "AAPL") > strings.Index(got, "TSLA") {
		t.Error("holdings are not sorted by symbol")
	}
}

func TestHoldingsMarkdown_Unpriced(t *testing.T) {
	holdings := map[string]brokerage.Quantity{"NVDA": brokerage.Q(4)}

	got := HoldingsMarkdown("USD", holdings, brokerage.StaticPrices{})
	if !strings.Contains(got, "| NVDA | 4.000000 | n/a | n/a |") {
		t.Errorf("unpriced holding is not marked n/a:\n%s", got)
	}
	if strings.Contains(got, "Total value:") {
		t.Errorf("total rendered despite an unpriced holding:\n%s", got)
	}
}

func TestHoldingsMarkdown_Empty(t *testing.T) {
	got := HoldingsMarkdown("USD", nil, brokerage.StaticPrices{})
	if !strings.Contains(got, "No open positions.") {
		t.Errorf("empty holdings = %q, want a 'No open positions.' notice", got)
	}
}

func TestTransaction(t *testing.T) {
	a := testLedger(t)

	var lines []string
	for tx := range a.Transactions() {
		lines = append(lines, Transaction(tx, a.Currency()))
	}
	want := []string{
		"Deposited $10,000.00",
		"Bought 10.000000 of AAPL at $140.00",
	}
	if len(lines) != len(want) {
		t.Fatalf("rendered %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
