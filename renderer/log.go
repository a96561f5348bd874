package renderer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/averlon/brokerage"
)

// LogMarkdown renders a transaction log as a markdown table, in the
// order the records were appended.
func LogMarkdown(currency string, txs iter.Seq[brokerage.Transaction]) string {
	r := &logRenderer{Builder: &strings.Builder{}}

	r.Printf("## Transaction Log\n\n")
	r.Printf("| Time | Type | Detail | Total | Note |\n")
	r.Printf("|:---|:---|:---|---:|:---|\n")
	n := 0
	for tx := range txs {
		r.Printf("| %s | %s | %s | %s | %s |\n",
			tx.Time().Format(timeLayout), tx.Type(), detail(tx, currency), signedDisplay(tx.Total(), currency), tx.Note())
		n++
	}
	if n == 0 {
		return "## Transaction Log\n\nNo transactions.\n"
	}
	r.Printf("\n")
	return r.String()
}

// detail describes the subject of a record: the traded position for
// BUY/SELL, nothing for cash movements whose total says it all.
func detail(tx brokerage.Transaction, currency string) string {
	if !tx.Type().IsTrade() {
		return ""
	}
	return fmt.Sprintf("%s %s @ %s", tx.Quantity(), tx.Symbol(), display(tx.Price(), currency))
}

// logRenderer formats the output of the log generator into a markdown string.
type logRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *logRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
