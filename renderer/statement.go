package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/averlon/brokerage"
	md "github.com/nao1215/markdown"
)

// StatementMarkdown renders the aggregate account report to a markdown
// string.
func StatementMarkdown(stats *brokerage.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Account Statement for %s", stats.Owner))
	doc.PlainText(fmt.Sprintf("As of %s, in %s.", stats.AsOf.Format(timeLayout), stats.Currency))

	doc.H2("Balances")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Amount"},
		Rows: [][]string{
			{"Cash", display(stats.Cash, stats.Currency)},
			{"Portfolio value", display(stats.PortfolioValue, stats.Currency)},
			{"Equity", display(stats.Equity, stats.Currency)},
			{"Net contributions", display(stats.NetContributions, stats.Currency)},
			{"Profit and loss", signedDisplay(stats.ProfitLoss, stats.Currency)},
			{"P&L vs first deposit", signedDisplay(stats.ProfitLossVsFirstDeposit, stats.Currency)},
		},
	})

	if len(stats.Holdings) > 0 {
		doc.H2("Holdings")
		rows := make([][]string, 0, len(stats.Holdings))
		for _, symbol := range slices.Sorted(maps.Keys(stats.Holdings)) {
			rows = append(rows, []string{symbol, stats.Holdings[symbol].String()})
		}
		doc.Table(md.TableSet{Header: []string{"Symbol", "Quantity"}, Rows: rows})
	}

	doc.PlainText(fmt.Sprintf("%d transactions across %d open positions.", stats.Transactions, stats.Positions))
	return doc.String()
}
