package brokerage

import (
	"testing"
	"time"
)

// usd is a helper for tests to create money from a const.
func usd(v float64) Money { return M(v) }

// qty is a helper for tests to create a quantity from a const.
func qty(v float64) Quantity { return Q(v) }

// tick returns a UTC instant n minutes into a fixed test day.
func tick(n int) time.Time {
	return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute)
}

// testAccount creates a USD account with a deterministic clock that
// advances one minute per call. The clock starts at tick(101), after any
// explicit tick the tests pass, so "now" never precedes a record.
func testAccount(t *testing.T) *Account {
	t.Helper()
	a, err := NewAccount("ana", "USD")
	if err != nil {
		t.Fatalf("NewAccount() returned an unexpected error: %v", err)
	}
	n := 100
	a.now = func() time.Time {
		n++
		return tick(n)
	}
	return a
}

// fundedAccount creates a test account seeded with a 10000.00 deposit at
// tick(0).
func fundedAccount(t *testing.T) *Account {
	t.Helper()
	a := testAccount(t)
	if _, err := a.Deposit(usd(10000), tick(0), ""); err != nil {
		t.Fatalf("Deposit() returned an unexpected error: %v", err)
	}
	return a
}

// tradedAccount creates a funded account with a short trading history:
//
//	tick(0)  DEPOSIT    10000.00            cash 10000.00
//	tick(1)  BUY  AAPL  10 @ 150.00         cash  8500.00
//	tick(2)  BUY  TSLA   2 @ 250.00         cash  8000.00
//	tick(3)  SELL AAPL   5 @ 160.00         cash  8800.00
//	tick(4)  WITHDRAWAL   300.00            cash  8500.00
func tradedAccount(t *testing.T) *Account {
	t.Helper()
	a := fundedAccount(t)
	steps := []func() error{
		func() error { _, err := a.Buy("AAPL", qty(10), usd(150), tick(1), ""); return err },
		func() error { _, err := a.Buy("TSLA", qty(2), usd(250), tick(2), ""); return err },
		func() error { _, err := a.Sell("AAPL", qty(5), usd(160), tick(3), ""); return err },
		func() error { _, err := a.Withdraw(usd(300), tick(4), ""); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("history step %d returned an unexpected error: %v", i, err)
		}
	}
	return a
}
