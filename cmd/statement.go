package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/averlon/brokerage"
	"github.com/averlon/brokerage/renderer"
	"github.com/google/subcommands"
)

// statementCmd holds the flags for the 'statement' subcommand.
type statementCmd struct {
	at      string
	json    bool
	pricing pricingFlags
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "display the full account statement" }
func (*statementCmd) Usage() string {
	return `bkr statement [-at <time>] [-json] [-prices ... | -quote-url ...]

  Displays cash, holdings, equity and profit and loss in one report.
  With -json, emits the figures as a single JSON object instead.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.at, "at", "", "Cutoff time (RFC 3339 UTC), defaults to now")
	f.BoolVar(&c.json, "json", false, "Emit the statement as JSON")
	c.pricing.SetFlags(f)
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := c.pricing.apply(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var stats *brokerage.Stats
	if at.IsZero() {
		stats, err = a.Stats()
	} else {
		stats, err = a.StatsAt(at)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		b, err := json.Marshal(stats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(b))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.StatementMarkdown(stats))
	return subcommands.ExitSuccess
}
