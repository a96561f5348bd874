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

// logCmd holds the flags for the 'log' subcommand.
type logCmd struct {
	typ    string
	symbol string
	from   string
	to     string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list the transactions in the ledger" }
func (*logCmd) Usage() string {
	return `bkr log [-type <type>] [-s <symbol>] [-from <time>] [-to <time>]

  Lists transactions in recording order. Filters combine: a record
  must match all of them.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Keep only DEPOSIT, WITHDRAWAL, BUY or SELL records")
	f.StringVar(&c.symbol, "s", "", "Keep only records trading the given symbol")
	f.StringVar(&c.from, "from", "", "Keep only records at or after this time (RFC 3339 UTC)")
	f.StringVar(&c.to, "to", "", "Keep only records at or before this time (RFC 3339 UTC)")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []brokerage.TransactionFilter

	if c.typ != "" {
		typ, err := brokerage.ParseTransactionType(c.typ)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, brokerage.OfType(typ))
	}
	if c.symbol != "" {
		filters = append(filters, brokerage.BySymbol(c.symbol))
	}
	if c.from != "" || c.to != "" {
		from, err := parseAt(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		to, err := parseAt(c.to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, brokerage.Between(from, to))
	}

	a, err := loadAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LogMarkdown(a.Currency(), a.Transactions(filters...)))
	return subcommands.ExitSuccess
}
