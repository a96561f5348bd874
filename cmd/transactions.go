package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/averlon/brokerage"
	"github.com/averlon/brokerage/renderer"
	"github.com/google/subcommands"
)

// record validates a mutation against the loaded account, appends the
// committed transaction to the account file, and prints it back.
func record(apply func(a *brokerage.Account) (brokerage.Transaction, error)) subcommands.ExitStatus {
	a, err := loadAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := apply(a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if status := appendTransaction(tx); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Println(renderer.Transaction(tx, a.Currency()))
	return subcommands.ExitSuccess
}

// --- Deposit Command ---

type depositCmd struct {
	amount float64
	at     string
	note   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash deposit into the account" }
func (*depositCmd) Usage() string {
	return `bkr deposit -a <amount> [-at <time>] [-note <note>]

  Records a cash deposit into the account.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Amount of cash to deposit")
	f.StringVar(&c.at, "at", "", "Transaction time (RFC 3339 UTC), defaults to now")
	f.StringVar(&c.note, "note", "", "An optional rationale or note")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	at, err := parseAt(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return record(func(a *brokerage.Account) (brokerage.Transaction, error) {
		return a.Deposit(brokerage.M(c.amount), at, c.note)
	})
}

// --- Withdraw Command ---

type withdrawCmd struct {
	amount float64
	at     string
	note   string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal from the account" }
func (*withdrawCmd) Usage() string {
	return `bkr withdraw -a <amount> [-at <time>] [-note <note>]

  Records a cash withdrawal. Fails if it exceeds the cash balance.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Amount of cash to withdraw")
	f.StringVar(&c.at, "at", "", "Transaction time (RFC 3339 UTC), defaults to now")
	f.StringVar(&c.note, "note", "", "An optional rationale or note")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	at, err := parseAt(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return record(func(a *brokerage.Account) (brokerage.Transaction, error) {
		return a.Withdraw(brokerage.M(c.amount), at, c.note)
	})
}

// --- Buy Command ---

type buyCmd struct {
	symbol   string
	quantity float64
	price    float64
	at       string
	note     string
	pricing  pricingFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `bkr buy -s <symbol> -q <quantity> [-p <price>] [-at <time>] [-note <note>]

  Purchases shares of a security. The total cost is debited from the
  cash balance. Without -p, the price comes from the quote source.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share, 0 to ask the quote source")
	f.StringVar(&c.at, "at", "", "Transaction time (RFC 3339 UTC), defaults to now")
	f.StringVar(&c.note, "note", "", "An optional rationale or note")
	c.pricing.SetFlags(f)
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	at, err := parseAt(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return record(func(a *brokerage.Account) (brokerage.Transaction, error) {
		if err := c.pricing.apply(a); err != nil {
			return brokerage.Transaction{}, err
		}
		return a.Buy(c.symbol, brokerage.Q(c.quantity), brokerage.M(c.price), at, c.note)
	})
}

// --- Sell Command ---

type sellCmd struct {
	symbol   string
	quantity float64
	price    float64
	at       string
	note     string
	pricing  pricingFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `bkr sell -s <symbol> -q <quantity> [-p <price>] [-at <time>] [-note <note>]

  Sells shares of a security. The proceeds are credited to the cash
  balance. Without -p, the price comes from the quote source.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share, 0 to ask the quote source")
	f.StringVar(&c.at, "at", "", "Transaction time (RFC 3339 UTC), defaults to now")
	f.StringVar(&c.note, "note", "", "An optional rationale or note")
	c.pricing.SetFlags(f)
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	at, err := parseAt(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return record(func(a *brokerage.Account) (brokerage.Transaction, error) {
		if err := c.pricing.apply(a); err != nil {
			return brokerage.Transaction{}, err
		}
		return a.Sell(c.symbol, brokerage.Q(c.quantity), brokerage.M(c.price), at, c.note)
	})
}
