// Package mock is a deterministic in-memory price provider, used in tests
// and for running the demo without network access or API keys.
package mock

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/market"
)

// Provider serves prices from a fixed table. Unknown tickers fail with
// market.ErrPriceUnavailable, same as a real feed would.
type Provider struct {
	prices map[string]decimal.Decimal
}

var _ market.PriceProvider = (*Provider)(nil)

// NewProvider returns a provider with canned prices for the default
// universe.
func NewProvider() *Provider {
	return &Provider{
		prices: map[string]decimal.Decimal{
			"GME":  decimal.NewFromFloat(25.00),
			"AMC":  decimal.NewFromFloat(5.40),
			"BBBY": decimal.NewFromFloat(0.30),
			"KOSS": decimal.NewFromFloat(9.15),
		},
	}
}

// SetPrice overrides the price for ticker. Handy in tests.
func (p *Provider) SetPrice(ticker string, price decimal.Decimal) {
	p.prices[ticker] = price
}

// CurrentPrice returns the canned price for ticker.
func (p *Provider) CurrentPrice(ticker string) (decimal.Decimal, error) {
	price, ok := p.prices[ticker]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no mock price for %s", market.ErrPriceUnavailable, ticker)
	}
	return price, nil
}

// DayRange derives a plausible range around the canned price.
func (p *Provider) DayRange(ticker string) (decimal.Decimal, decimal.Decimal, error) {
	price, err := p.CurrentPrice(ticker)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	spread := decimal.NewFromFloat(0.03)
	high := price.Mul(decimal.NewFromInt(1).Add(spread)).Round(2)
	low := price.Mul(decimal.NewFromInt(1).Sub(spread)).Round(2)
	return high, low, nil
}
