package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/averlon/brokerage"
	"github.com/averlon/brokerage/quote"
	"github.com/google/subcommands"
)

// useTempAccount points the global account file at a path inside a
// fresh temp directory for the duration of the test.
func useTempAccount(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "account.bkr")
	old := accountFile
	accountFile = &path
	t.Cleanup(func() { accountFile = old })
	return path
}

// newFlagSet builds the quiet flag set a command is executed with.
func newFlagSet(c subcommands.Command) *flag.FlagSet {
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	return f
}

// writeAccountFile encodes a small traded history into path: 10000
// deposited, then 10 AAPL bought at 150, both on fixed instants.
func writeAccountFile(t *testing.T, path string) *brokerage.Account {
	t.Helper()

	a, err := brokerage.NewAccount("ana", "USD")
	if err != nil {
		t.Fatalf("NewAccount() returned an unexpected error: %v", err)
	}
	t0 := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	if _, err := a.Deposit(brokerage.M(10000), t0, "seed"); err != nil {
		t.Fatalf("Deposit() returned an unexpected error: %v", err)
	}
	if _, err := a.Buy("AAPL", brokerage.Q(10), brokerage.M(150), t0.Add(time.Minute), ""); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create account file: %v", err)
	}
	defer f.Close()
	if err := brokerage.EncodeAccount(f, a); err != nil {
		t.Fatalf("EncodeAccount() returned an unexpected error: %v", err)
	}
	return a
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// what it printed.
func captureStdout(t *testing.T, fn func() subcommands.ExitStatus) (string, subcommands.ExitStatus) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to open pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	status := fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(out), status
}

func TestParsePrices(t *testing.T) {
	testCases := []struct {
		name    string
		flag    string
		want    brokerage.StaticPrices
		wantErr bool
	}{
		{
			name: "single",
			flag: "AAPL=150",
			want: brokerage.StaticPrices{"AAPL": brokerage.M(150)},
		},
		{
			name: "several",
			flag: "AAPL=150,TSLA=249.50",
			want: brokerage.StaticPrices{"AAPL": brokerage.M(150), "TSLA": brokerage.M(249.50)},
		},
		{
			name: "normalized symbol",
			flag: " aapl =150",
			want: brokerage.StaticPrices{"AAPL": brokerage.M(150)},
		},
		{name: "missing value", flag: "AAPL", wantErr: true},
		{name: "bad value", flag: "AAPL=abc", wantErr: true},
		{name: "bad symbol", flag: "AA PL=5", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePrices(tc.flag)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parsePrices(%q) accepted an invalid table", tc.flag)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePrices(%q) returned an unexpected error: %v", tc.flag, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("parsePrices(%q) = %v, want %v", tc.flag, got, tc.want)
			}
			for sym, px := range tc.want {
				if !got[sym].Equal(px) {
					t.Errorf("parsePrices(%q)[%s] = %s, want %s", tc.flag, sym, got[sym], px)
				}
			}
		})
	}
}

func TestPricingFlags_Source(t *testing.T) {
	var p pricingFlags
	src, err := p.source()
	if err != nil || src != nil {
		t.Errorf("zero pricing flags = (%v, %v), want (nil, nil)", src, err)
	}

	p = pricingFlags{prices: "AAPL=200"}
	src, err = p.source()
	if err != nil {
		t.Fatalf("source() returned an unexpected error: %v", err)
	}
	if _, ok := src.(brokerage.StaticPrices); !ok {
		t.Errorf("source() = %T, want brokerage.StaticPrices", src)
	}

	p = pricingFlags{quoteURL: "https://quotes.example.com/last", quotePath: "$.data.last"}
	src, err = p.source()
	if err != nil {
		t.Fatalf("source() returned an unexpected error: %v", err)
	}
	c, ok := src.(*quote.Client)
	if !ok {
		t.Fatalf("source() = %T, want *quote.Client", src)
	}
	if c.BaseURL != "https://quotes.example.com/last" || c.Path != "$.data.last" {
		t.Errorf("client = %q at %q, want the flag values", c.BaseURL, c.Path)
	}
}

func TestParseAt(t *testing.T) {
	if at, err := parseAt(""); err != nil || !at.IsZero() {
		t.Errorf("parseAt(\"\") = (%v, %v), want the zero time", at, err)
	}
	at, err := parseAt("2025-03-10T09:00:00Z")
	if err != nil {
		t.Fatalf("parseAt() returned an unexpected error: %v", err)
	}
	want := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("parseAt() = %v, want %v", at, want)
	}
	if _, err := parseAt("yesterday"); err == nil {
		t.Error("parseAt() accepted a non RFC 3339 instant")
	}
}

func TestAccountLifecycle(t *testing.T) {
	useTempAccount(t)

	// Create the account with a seed deposit.
	create := &newCmd{}
	f := newFlagSet(create)
	f.Set("owner", "ana")
	f.Set("d", "10000")
	if _, status := captureStdout(t, func() subcommands.ExitStatus {
		return create.Execute(context.Background(), f)
	}); status != subcommands.ExitSuccess {
		t.Fatalf("new: expected ExitSuccess, got %v", status)
	}

	// Creating again must refuse to overwrite.
	if status := create.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Fatalf("new on an existing file: expected ExitFailure, got %v", status)
	}

	// Deposit more.
	deposit := &depositCmd{}
	f = newFlagSet(deposit)
	f.Set("a", "500")
	if _, status := captureStdout(t, func() subcommands.ExitStatus {
		return deposit.Execute(context.Background(), f)
	}); status != subcommands.ExitSuccess {
		t.Fatalf("deposit: expected ExitSuccess, got %v", status)
	}

	// Buy a position.
	buy := &buyCmd{}
	f = newFlagSet(buy)
	f.Set("s", "aapl")
	f.Set("q", "2")
	f.Set("p", "150")
	if _, status := captureStdout(t, func() subcommands.ExitStatus {
		return buy.Execute(context.Background(), f)
	}); status != subcommands.ExitSuccess {
		t.Fatalf("buy: expected ExitSuccess, got %v", status)
	}

	// An overdrawn withdrawal fails and leaves the file untouched.
	withdraw := &withdrawCmd{}
	f = newFlagSet(withdraw)
	f.Set("a", "99999")
	if status := withdraw.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Fatalf("overdrawn withdraw: expected ExitFailure, got %v", status)
	}

	a, err := loadAccount()
	if err != nil {
		t.Fatalf("loadAccount() returned an unexpected error: %v", err)
	}
	if got := a.CashBalance().String(); got != "10200.00" {
		t.Errorf("cash = %s, want 10200.00", got)
	}
	if got := a.Holdings()["AAPL"]; !got.Equal(brokerage.Q(2)) {
		t.Errorf("AAPL position = %s, want 2.000000", got)
	}
	n := 0
	for range a.Transactions() {
		n++
	}
	if n != 3 {
		t.Errorf("ledger holds %d records, want 3", n)
	}
}

func TestDeposit_UsageErrors(t *testing.T) {
	useTempAccount(t)

	deposit := &depositCmd{}
	f := newFlagSet(deposit)
	if status := deposit.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("missing amount: expected ExitUsageError, got %v", status)
	}

	f = newFlagSet(deposit)
	f.Set("a", "10")
	f.Set("at", "not-a-time")
	if status := deposit.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("bad -at: expected ExitUsageError, got %v", status)
	}
}

func TestStatement_JSON(t *testing.T) {
	path := useTempAccount(t)
	writeAccountFile(t, path)

	statement := &statementCmd{}
	f := newFlagSet(statement)
	f.Set("json", "true")
	f.Set("at", "2025-03-10T09:01:00Z")

	out, status := captureStdout(t, func() subcommands.ExitStatus {
		return statement.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("statement: expected ExitSuccess, got %v", status)
	}

	want := `{"owner":"ana","currency":"USD","asOf":"2025-03-10T09:01:00Z","cash":8500.00,"holdings":{"AAPL":10.000000},"portfolioValue":1500.00,"equity":10000.00,"netContributions":10000.00,"profitLoss":0.00,"profitLossVsFirstDeposit":0.00,"positions":1,"transactions":2}`
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("statement -json:\ngot  %s\nwant %s", got, want)
	}
}

func TestLog_Filters(t *testing.T) {
	path := useTempAccount(t)
	writeAccountFile(t, path)

	logc := &logCmd{}
	f := newFlagSet(logc)
	f.Set("type", "buy")

	out, status := captureStdout(t, func() subcommands.ExitStatus {
		return logc.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("log: expected ExitSuccess, got %v", status)
	}
	if !strings.Contains(out, "| BUY |") {
		t.Errorf("filtered log misses the BUY record:\n%s", out)
	}
	if strings.Contains(out, "DEPOSIT") {
		t.Errorf("filtered log still shows DEPOSIT records:\n%s", out)
	}

	f = newFlagSet(logc)
	f.Set("type", "TRANSFER")
	if status := logc.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("unknown type: expected ExitUsageError, got %v", status)
	}
}

func TestShow(t *testing.T) {
	path := useTempAccount(t)
	a := writeAccountFile(t, path)

	var id string
	for tx := range a.Transactions(brokerage.OfType(brokerage.TxDeposit)) {
		id = tx.ID()
	}
	if id == "" {
		t.Fatal("no deposit record to show")
	}

	show := &showCmd{}
	f := newFlagSet(show)
	f.Parse([]string{id})

	out, status := captureStdout(t, func() subcommands.ExitStatus {
		return show.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("show: expected ExitSuccess, got %v", status)
	}
	if !strings.Contains(out, "Deposited $10,000.00") {
		t.Errorf("show misses the description:\n%s", out)
	}
	if !strings.Contains(out, `"id":"`+id+`"`) {
		t.Errorf("show misses the ledger record:\n%s", out)
	}

	f = newFlagSet(show)
	f.Parse([]string{"no-such-id"})
	if status := show.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("unknown id: expected ExitFailure, got %v", status)
	}
}
