package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/averlon/brokerage"
	"github.com/averlon/brokerage/quote"
)

// pricingFlags selects the quote source for commands that value
// positions or resolve omitted trade prices.
type pricingFlags struct {
	prices    string
	quoteURL  string
	quotePath string
}

func (p *pricingFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.prices, "prices", "", "Static quotes SYMBOL=VALUE[,...], e.g. AAPL=150,TSLA=250. Overrides -quote-url")
	f.StringVar(&p.quoteURL, "quote-url", "", "Base URL of a JSON quote endpoint")
	f.StringVar(&p.quotePath, "quote-path", quote.DefaultPath, "JSON path of the price in the endpoint response")
}

// source returns the configured price source, or nil to keep the
// account's default.
func (p *pricingFlags) source() (brokerage.PriceSource, error) {
	if p.prices != "" {
		return parsePrices(p.prices)
	}
	if p.quoteURL != "" {
		c := quote.New(p.quoteURL)
		c.Path = p.quotePath
		return c, nil
	}
	return nil, nil
}

// apply configures the account with the selected source, if any.
func (p *pricingFlags) apply(a *brokerage.Account) error {
	src, err := p.source()
	if err != nil {
		return err
	}
	if src != nil {
		a.SetPriceSource(src)
	}
	return nil
}

// parsePrices parses a static quote table from its flag form.
func parsePrices(s string) (brokerage.StaticPrices, error) {
	table := brokerage.StaticPrices{}
	for _, pair := range strings.Split(s, ",") {
		sym, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid price %q, want SYMBOL=VALUE", pair)
		}
		symbol, err := brokerage.NormalizeSymbol(sym)
		if err != nil {
			return nil, err
		}
		price, err := brokerage.ParseMoney(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %q: %w", symbol, err)
		}
		table[symbol] = price
	}
	return table, nil
}
