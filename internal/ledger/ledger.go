// Package ledger owns the portfolio's financial state transitions: opening
// a position against the cash balance, closing it against a market price,
// and the derived read-only aggregates.
//
// The ledger never does I/O. The portfolio value is passed in explicitly,
// mutated by exactly one operation, and persisted by the caller; "today" is
// an explicit input so date-rollover behavior stays deterministic in tests.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/models"
)

// OpenOrder carries everything needed to open a position. EntryPrice, DayHigh
// and DayLow are snapshots the caller already resolved through its price
// provider (possibly a fallback value); the ledger does not distinguish.
type OpenOrder struct {
	Ticker     string
	Score      float64
	Investment decimal.Decimal
	EntryPrice decimal.Decimal
	DayHigh    decimal.Decimal
	DayLow     decimal.Decimal
	Today      string
}

// PriceLookup resolves a ticker to its current market price. Supplied by the
// caller when computing aggregate values over open positions.
type PriceLookup func(ticker string) (decimal.Decimal, error)

// Open appends a new unsold position and debits the balance. All guards run
// before any mutation, so a failed open leaves the portfolio exactly as it
// was. One open per calendar day is allowed.
func Open(p *models.Portfolio, o OpenOrder) (*models.Position, error) {
	if p.LastPickDate != "" && p.LastPickDate == o.Today {
		return nil, ErrAlreadyPickedToday
	}
	if o.Investment.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if o.Investment.GreaterThan(p.Balance) {
		return nil, ErrInsufficientFunds
	}
	if o.EntryPrice.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	pos := models.Position{
		Date:       o.Today,
		Ticker:     o.Ticker,
		Score:      o.Score,
		Investment: o.Investment,
		Shares:     o.Investment.Div(o.EntryPrice),
		EntryPrice: o.EntryPrice,
		High:       o.DayHigh,
		Low:        o.DayLow,
		Sold:       false,
	}

	p.History = append(p.History, pos)
	p.Balance = p.Balance.Sub(o.Investment)
	p.LastPickDate = o.Today

	return &p.History[len(p.History)-1], nil
}

// Close sells the position at index for exitPrice, credits the proceeds and
// marks the position terminal. A sold position can never be sold again or
// reopened.
func Close(p *models.Portfolio, index int, exitPrice decimal.Decimal, today string) (*models.Position, error) {
	if index < 0 || index >= len(p.History) {
		return nil, ErrInvalidIndex
	}
	pos := &p.History[index]
	if pos.Sold {
		return nil, ErrAlreadySold
	}

	proceeds := pos.Shares.Mul(exitPrice).Round(2)
	gain := proceeds.Sub(pos.Investment)

	pos.Sold = true
	pos.ExitPrice = &exitPrice
	pos.SaleProceeds = &proceeds
	pos.GainLoss = &gain
	pos.SellDate = today

	p.Balance = p.Balance.Add(proceeds)

	return pos, nil
}

// OpenPositions returns the history indices of positions not yet sold, in
// chronological order.
func OpenPositions(p *models.Portfolio) []int {
	var open []int
	for i := range p.History {
		if !p.History[i].Sold {
			open = append(open, i)
		}
	}
	return open
}

// TotalInvested sums the invested amount over the entire history, sold
// positions included.
func TotalInvested(p *models.Portfolio) decimal.Decimal {
	total := decimal.Zero
	for i := range p.History {
		total = total.Add(p.History[i].Investment)
	}
	return total
}

// PortfolioValue is the cash balance plus the mark-to-market value of every
// open position. Lookup failures abort the calculation; the caller decides
// on fallback prices before handing the lookup to the ledger.
func PortfolioValue(p *models.Portfolio, lookup PriceLookup) (decimal.Decimal, error) {
	value := p.Balance
	for _, i := range OpenPositions(p) {
		pos := &p.History[i]
		price, err := lookup(pos.Ticker)
		if err != nil {
			return decimal.Zero, err
		}
		value = value.Add(pos.Shares.Mul(price))
	}
	return value, nil
}

// TotalGainLoss is the portfolio value relative to the starting bankroll.
func TotalGainLoss(p *models.Portfolio, lookup PriceLookup) (decimal.Decimal, error) {
	value, err := PortfolioValue(p, lookup)
	if err != nil {
		return decimal.Zero, err
	}
	return value.Sub(models.StartingBalance), nil
}
