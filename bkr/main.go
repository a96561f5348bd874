// Command bkr manages a brokerage account kept in an append-only
// ledger file.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/averlon/brokerage/cmd"
	"github.com/averlon/brokerage/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Handles shell completion requests and returns immediately on a
	// normal run.
	completion().Complete("bkr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion declares the bkr command tree for shell completion.
func completion() *complete.Command {
	at := predict.Something
	note := predict.Something
	pricing := map[string]complete.Predictor{
		"prices":     predict.Something,
		"quote-url":  predict.Something,
		"quote-path": predict.Something,
	}
	trade := withPricing(map[string]complete.Predictor{
		"s": predict.Something, "q": predict.Something, "p": predict.Something,
		"at": at, "note": note,
	}, pricing)

	topics, _ := docs.GetAllTopics()
	topics = append(topics, "readme", "*")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"f": predict.Files("*.bkr"),
		},
		Sub: map[string]*complete.Command{
			"new": {Flags: map[string]complete.Predictor{
				"owner":    predict.Something,
				"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
				"d":        predict.Something,
			}},
			"deposit":  {Flags: map[string]complete.Predictor{"a": predict.Something, "at": at, "note": note}},
			"withdraw": {Flags: map[string]complete.Predictor{"a": predict.Something, "at": at, "note": note}},
			"buy":      {Flags: trade},
			"sell":     {Flags: trade},
			"holdings": {Flags: withPricing(map[string]complete.Predictor{"at": at}, pricing)},
			"statement": {Flags: withPricing(map[string]complete.Predictor{
				"at":   at,
				"json": predict.Nothing,
			}, pricing)},
			"log": {Flags: map[string]complete.Predictor{
				"type": predict.Set{"DEPOSIT", "WITHDRAWAL", "BUY", "SELL"},
				"s":    predict.Something,
				"from": at,
				"to":   at,
			}},
			"show":  {},
			"topic": {Args: predict.Set(topics)},
		},
	}
}

func withPricing(flags, pricing map[string]complete.Predictor) map[string]complete.Predictor {
	for name, p := range pricing {
		flags[name] = p
	}
	return flags
}
