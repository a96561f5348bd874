package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/averlon/brokerage"
	"github.com/google/subcommands"
)

type newCmd struct {
	owner    string
	currency string
	deposit  float64
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a new account file" }
func (*newCmd) Usage() string {
	return `bkr new -owner <name> [-currency <code>] [-d <amount>]

  Creates the account file. Refuses to overwrite an existing one.
  With -d, records an initial deposit.

Usage Examples:
# Create ana's USD account with 10000 in cash.
$ bkr new -owner ana -d 10000

`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Account owner")
	f.StringVar(&c.currency, "currency", "USD", "ISO 4217 cash currency code")
	f.Float64Var(&c.deposit, "d", 0, "Optional initial deposit amount")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(*accountFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: account file %q already exists\n", *accountFile)
		return subcommands.ExitFailure
	}

	a, err := brokerage.NewAccount(c.owner, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.deposit > 0 {
		if _, err := a.Deposit(brokerage.M(c.deposit), time.Time{}, "initial deposit"); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	out, err := os.OpenFile(*accountFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account file %q: %v\n", *accountFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := brokerage.EncodeAccount(out, a); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing account file %q: %v\n", *accountFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created account for %s (%s) in %s\n", a.Owner(), a.Currency(), *accountFile)
	return subcommands.ExitSuccess
}
