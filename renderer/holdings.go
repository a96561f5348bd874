package renderer

import (
	"maps"
	"slices"
	"strings"

	"github.com/averlon/brokerage"
)

// HoldingsMarkdown renders open positions as a markdown table, valued
// with quotes from the given source. A symbol the source cannot price
// shows "n/a" columns and is left out of the total.
func HoldingsMarkdown(currency string, holdings map[string]brokerage.Quantity, prices brokerage.PriceSource) string {
	if len(holdings) == 0 {
		return "## Holdings\n\nNo open positions.\n"
	}

	r := &logRenderer{Builder: &strings.Builder{}}
	r.Printf("## Holdings\n\n")
	r.Printf("| Symbol | Quantity | Price | Value |\n")
	r.Printf("|:---|---:|---:|---:|\n")

	var total brokerage.Money
	priced := true
	for _, symbol := range slices.Sorted(maps.Keys(holdings)) {
		q := holdings[symbol]
		px, err := prices.PriceFor(symbol)
		if err != nil || !px.IsPositive() {
			r.Printf("| %s | %s | n/a | n/a |\n", symbol, q)
			priced = false
			continue
		}
		value := px.Mul(q)
		total = total.Add(value)
		r.Printf("| %s | %s | %s | %s |\n", symbol, q, display(px, currency), display(value, currency))
	}
	r.Printf("\n")
	if priced {
		r.Printf("Total value: %s\n", display(total, currency))
	}
	return r.String()
}
