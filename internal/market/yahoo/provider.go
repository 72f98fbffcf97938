// Package yahoo implements the price provider against Yahoo Finance via
// piquette/finance-go. It needs no API key, which makes it the default
// backend.
package yahoo

import (
	"fmt"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/market"
)

// Provider fetches quotes from Yahoo Finance.
type Provider struct{}

var _ market.PriceProvider = (*Provider)(nil)

// NewProvider returns a Yahoo Finance backed provider.
func NewProvider() *Provider {
	return &Provider{}
}

// CurrentPrice returns the regular-market price for ticker.
func (p *Provider) CurrentPrice(ticker string) (decimal.Decimal, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: yahoo quote for %s: %v", market.ErrPriceUnavailable, ticker, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return decimal.Zero, fmt.Errorf("%w: yahoo returned no price for %s", market.ErrPriceUnavailable, ticker)
	}
	return decimal.NewFromFloat(q.RegularMarketPrice).Round(2), nil
}

// DayRange returns today's regular-market high and low for ticker.
func (p *Provider) DayRange(ticker string) (decimal.Decimal, decimal.Decimal, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: yahoo quote for %s: %v", market.ErrPriceUnavailable, ticker, err)
	}
	if q == nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: yahoo returned no quote for %s", market.ErrPriceUnavailable, ticker)
	}
	high := decimal.NewFromFloat(q.RegularMarketDayHigh).Round(2)
	low := decimal.NewFromFloat(q.RegularMarketDayLow).Round(2)
	return high, low, nil
}
