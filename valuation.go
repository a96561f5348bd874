package brokerage

import (
	"maps"
	"slices"
	"time"
)

// PortfolioValue sums quantity times unit price over the holdings at the
// cutoff, using the account's price source. It fails with
// ErrPriceUnavailable when any held symbol cannot be priced.
func (s *Snapshot) PortfolioValue() (Money, error) {
	holdings := s.Holdings()
	var total Money
	for _, symbol := range slices.Sorted(maps.Keys(holdings)) {
		px, err := lookupPrice(s.pricer, symbol)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(px.Mul(holdings[symbol]))
	}
	return total, nil
}

// Equity is cash plus portfolio value at the cutoff.
func (s *Snapshot) Equity() (Money, error) {
	value, err := s.PortfolioValue()
	if err != nil {
		return Money{}, err
	}
	return s.Cash().Add(value), nil
}

// ProfitLoss is equity minus net contributions at the cutoff: what the
// account gained beyond the cash its owner put in.
func (s *Snapshot) ProfitLoss() (Money, error) {
	equity, err := s.Equity()
	if err != nil {
		return Money{}, err
	}
	return equity.Sub(s.NetContributions()), nil
}

// ProfitLossVsFirstDeposit is equity minus the amount of the first
// deposit ever recorded, the owner's original baseline.
func (s *Snapshot) ProfitLossVsFirstDeposit() (Money, error) {
	equity, err := s.Equity()
	if err != nil {
		return Money{}, err
	}
	return equity.Sub(s.firstDeposit()), nil
}

// Stats bundles every headline figure of an account at one instant.
type Stats struct {
	Owner                    string
	Currency                 string
	AsOf                     time.Time
	Cash                     Money
	Holdings                 map[string]Quantity
	PortfolioValue           Money
	Equity                   Money
	NetContributions         Money
	ProfitLoss               Money
	ProfitLossVsFirstDeposit Money
	Positions                int
	Transactions             int
}

// Stats computes the aggregate snapshot report.
func (s *Snapshot) Stats() (*Stats, error) {
	holdings := s.Holdings()
	value, err := s.PortfolioValue()
	if err != nil {
		return nil, err
	}
	cash := s.Cash()
	equity := cash.Add(value)
	net := s.NetContributions()
	return &Stats{
		Owner:                    s.owner,
		Currency:                 s.currency,
		AsOf:                     s.asOf,
		Cash:                     cash,
		Holdings:                 holdings,
		PortfolioValue:           value,
		Equity:                   equity,
		NetContributions:         net,
		ProfitLoss:               equity.Sub(net),
		ProfitLossVsFirstDeposit: equity.Sub(s.firstDeposit()),
		Positions:                len(holdings),
		Transactions:             s.TransactionCount(),
	}, nil
}

// MarshalJSON renders the report with stable key order and decimal
// fields as unquoted fixed-digit numbers.
func (st *Stats) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("owner", st.Owner)
	w.Append("currency", st.Currency)
	w.Append("asOf", st.AsOf.Format(time.RFC3339Nano))
	w.Append("cash", st.Cash)
	w.Append("holdings", st.Holdings)
	w.Append("portfolioValue", st.PortfolioValue)
	w.Append("equity", st.Equity)
	w.Append("netContributions", st.NetContributions)
	w.Append("profitLoss", st.ProfitLoss)
	w.Append("profitLossVsFirstDeposit", st.ProfitLossVsFirstDeposit)
	w.Append("positions", st.Positions)
	w.Append("transactions", st.Transactions)
	return w.MarshalJSON()
}

// PortfolioValue values the current holdings at current quotes.
func (a *Account) PortfolioValue() (Money, error) {
	return a.Snapshot().PortfolioValue()
}

// PortfolioValueAt values the holdings as of the cutoff at current
// quotes.
func (a *Account) PortfolioValueAt(asOf time.Time) (Money, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return Money{}, err
	}
	return s.PortfolioValue()
}

// Equity returns current cash plus portfolio value.
func (a *Account) Equity() (Money, error) {
	return a.Snapshot().Equity()
}

// EquityAt returns cash plus portfolio value as of the cutoff.
func (a *Account) EquityAt(asOf time.Time) (Money, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return Money{}, err
	}
	return s.Equity()
}

// ProfitLoss returns current equity minus net contributions.
func (a *Account) ProfitLoss() (Money, error) {
	return a.Snapshot().ProfitLoss()
}

// ProfitLossAt returns equity minus net contributions as of the cutoff.
func (a *Account) ProfitLossAt(asOf time.Time) (Money, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return Money{}, err
	}
	return s.ProfitLoss()
}

// ProfitLossVsFirstDeposit returns current equity minus the first
// deposit.
func (a *Account) ProfitLossVsFirstDeposit() (Money, error) {
	return a.Snapshot().ProfitLossVsFirstDeposit()
}

// ProfitLossVsFirstDepositAt returns equity as of the cutoff minus the
// first deposit.
func (a *Account) ProfitLossVsFirstDepositAt(asOf time.Time) (Money, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return Money{}, err
	}
	return s.ProfitLossVsFirstDeposit()
}

// Stats returns the aggregate report for the current state.
func (a *Account) Stats() (*Stats, error) {
	return a.Snapshot().Stats()
}

// StatsAt returns the aggregate report as of the cutoff.
func (a *Account) StatsAt(asOf time.Time) (*Stats, error) {
	s, err := a.SnapshotAt(asOf)
	if err != nil {
		return nil, err
	}
	return s.Stats()
}
