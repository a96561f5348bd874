package renderer

import (
	"fmt"

	"github.com/averlon/brokerage"
)

// Transaction renders a record to a one-line description.
func Transaction(tx brokerage.Transaction, currency string) string {
	switch tx.Type() {
	case brokerage.TxBuy:
		return fmt.Sprintf("Bought %s of %s at %s", tx.Quantity(), tx.Symbol(), display(tx.Price(), currency))
	case brokerage.TxSell:
		return fmt.Sprintf("Sold %s of %s at %s", tx.Quantity(), tx.Symbol(), display(tx.Price(), currency))
	case brokerage.TxDeposit:
		return fmt.Sprintf("Deposited %s", display(tx.Amount(), currency))
	case brokerage.TxWithdrawal:
		return fmt.Sprintf("Withdrew %s", display(tx.Amount(), currency))
	default:
		return tx.Type().String()
	}
}
