// Package cmd implements the CLI application to manage a brokerage
// account.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/averlon/brokerage"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&newCmd{}, "account")
	c.Register(&topicCmd{}, "account")

	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&statementCmd{}, "reports")
	c.Register(&logCmd{}, "reports")
	c.Register(&showCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var accountFile = flag.String("f", defaultAccountFile(), "Path to the account ledger file")

// defaultAccountFile is account.bkr in the working directory, or
// $BKR_ACCOUNT when set.
func defaultAccountFile() string {
	if f := os.Getenv("BKR_ACCOUNT"); f != "" {
		return f
	}
	return "account.bkr"
}

// loadAccount reads and replays the whole account file.
func loadAccount() (*brokerage.Account, error) {
	f, err := os.Open(*accountFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open account file %q: %w", *accountFile, err)
	}
	defer f.Close()

	a, err := brokerage.DecodeAccount(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load account file %q: %w", *accountFile, err)
	}
	return a, nil
}

// appendTransaction appends a committed record to the account file.
func appendTransaction(tx brokerage.Transaction) subcommands.ExitStatus {
	f, err := os.OpenFile(*accountFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening account file %q: %v\n", *accountFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := brokerage.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to account file %q: %v\n", *accountFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseAt parses an -at flag. Empty means now. The account itself
// enforces that the instant is UTC.
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q, want RFC 3339 like 2025-03-10T09:00:00Z: %w", s, err)
	}
	return at, nil
}
