// Package market defines the price provider contract the rest of the app
// consumes. Concrete backends live in subpackages, so the ledger and server
// can be tested against a mock without touching a real quote feed.
package market

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable wraps every lookup failure (network, unknown ticker,
// empty feed). Callers decide what to do with it; the usual policy is to
// substitute a configured fallback price and say so in the response.
var ErrPriceUnavailable = errors.New("market price unavailable")

// PriceProvider supplies current market data for a ticker.
//
// Implementations return errors wrapping ErrPriceUnavailable on any lookup
// failure and never block beyond their own client timeouts.
type PriceProvider interface {
	// CurrentPrice returns the latest trade price.
	CurrentPrice(ticker string) (decimal.Decimal, error)
	// DayRange returns today's high and low.
	DayRange(ticker string) (high, low decimal.Decimal, err error)
}
