// Package renderer formats account state as markdown reports.
package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/averlon/brokerage"
)

// moneyDigits matches the fixed fractional precision of brokerage.Money.
const moneyDigits = 2

// timeLayout is how report timestamps are rendered. Account timestamps
// are always UTC.
const timeLayout = "2006-01-02 15:04:05 MST"

// display renders an amount with its currency symbol, e.g. "$8,500.00".
// An unknown code falls back to the plain decimal form.
func display(m brokerage.Money, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %s", m, code)
	}
	f := money.NewFormatter(moneyDigits, ".", ",", cur.Grapheme, cur.Template)
	return f.Format(minorUnits(m))
}

// signedDisplay is display with an explicit sign on positive amounts,
// for profit and loss figures.
func signedDisplay(m brokerage.Money, code string) string {
	if m.IsPositive() {
		return "+" + display(m, code)
	}
	return display(m, code)
}

// minorUnits converts an amount to hundredths. Money always carries two
// fractional digits, so dropping the point is exact.
func minorUnits(m brokerage.Money) int64 {
	v, _ := strconv.ParseInt(strings.Replace(m.String(), ".", "", 1), 10, 64)
	return v
}
