// Package alpaca implements the price provider against the Alpaca market
// data API. Requires APCA_API_KEY_ID / APCA_API_SECRET_KEY in the
// environment; the SDK clients pick them up on their own.
package alpaca

import (
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/market"
)

// Provider fetches prices from Alpaca market data.
type Provider struct {
	mdClient *marketdata.Client
}

var _ market.PriceProvider = (*Provider)(nil)

// NewProvider returns an Alpaca backed provider.
func NewProvider() *Provider {
	return &Provider{
		mdClient: marketdata.NewClient(marketdata.ClientOpts{}),
	}
}

// CurrentPrice returns the latest trade price for ticker.
func (p *Provider) CurrentPrice(ticker string) (decimal.Decimal, error) {
	trade, err := p.mdClient.GetLatestTrade(ticker, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: alpaca latest trade for %s: %v", market.ErrPriceUnavailable, ticker, err)
	}
	if trade == nil || trade.Price <= 0 {
		return decimal.Zero, fmt.Errorf("%w: alpaca returned no trade for %s", market.ErrPriceUnavailable, ticker)
	}
	return decimal.NewFromFloat(trade.Price).Round(2), nil
}

// DayRange returns the high and low of the most recent daily bar. Looking a
// few days back covers weekends and market holidays.
func (p *Provider) DayRange(ticker string) (decimal.Decimal, decimal.Decimal, error) {
	bars, err := p.mdClient.GetBars(ticker, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     time.Now().AddDate(0, 0, -5),
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: alpaca bars for %s: %v", market.ErrPriceUnavailable, ticker, err)
	}
	if len(bars) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: alpaca returned no bars for %s", market.ErrPriceUnavailable, ticker)
	}

	last := bars[len(bars)-1]
	high := decimal.NewFromFloat(last.High).Round(2)
	low := decimal.NewFromFloat(last.Low).Round(2)
	return high, low, nil
}
