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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	at      string
	pricing pricingFlags
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display open positions and their market value" }
func (*holdingsCmd) Usage() string {
	return `bkr holdings [-at <time>] [-prices ... | -quote-url ...]

  Displays the open positions, valued at current quotes. With -at, the
  positions are those held at that instant; quotes stay current.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.at, "at", "", "Cutoff time (RFC 3339 UTC), defaults to now")
	c.pricing.SetFlags(f)
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	at, err := parseAt(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	holdings := a.Holdings()
	if !at.IsZero() {
		if holdings, err = a.HoldingsAt(at); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	source, err := c.pricing.source()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if source == nil {
		source = brokerage.DefaultPrices()
	}

	printMarkdown(renderer.HoldingsMarkdown(a.Currency(), holdings, source))
	return subcommands.ExitSuccess
}
