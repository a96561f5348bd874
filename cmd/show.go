package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/averlon/brokerage/renderer"
	"github.com/google/subcommands"
)

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show one transaction by id" }
func (*showCmd) Usage() string {
	return `bkr show <id>

  Shows a single transaction: its description and its ledger record.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	a, err := loadAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, ok := a.GetTransaction(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no transaction %q in %s\n", id, *accountFile)
		return subcommands.ExitFailure
	}

	b, err := json.Marshal(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(renderer.Transaction(tx, a.Currency()))
	fmt.Println(string(b))
	return subcommands.ExitSuccess
}
