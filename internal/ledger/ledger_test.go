package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/models"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func gmeOrder() OpenOrder {
	return OpenOrder{
		Ticker:     "GME",
		Score:      80,
		Investment: dec(100),
		EntryPrice: dec(25),
		DayHigh:    dec(26.5),
		DayLow:     dec(24.1),
		Today:      "2026-08-31",
	}
}

func TestOpen_HappyPath(t *testing.T) {
	p := models.NewPortfolio()

	pos, err := Open(&p, gmeOrder())
	require.NoError(t, err)

	assert.True(t, p.Balance.Equal(dec(900)), "balance: %s", p.Balance)
	assert.Equal(t, "2026-08-31", p.LastPickDate)
	require.Len(t, p.History, 1)

	assert.Equal(t, "GME", pos.Ticker)
	assert.Equal(t, 80.0, pos.Score)
	assert.True(t, pos.Shares.Equal(dec(4)), "shares: %s", pos.Shares)
	assert.False(t, pos.Sold)
	assert.Nil(t, pos.ExitPrice)
}

func TestOpen_ExactShareMath(t *testing.T) {
	p := models.NewPortfolio()

	pos, err := Open(&p, OpenOrder{
		Ticker: "AMC", Investment: dec(500), EntryPrice: dec(25), Today: "2026-08-31",
	})
	require.NoError(t, err)
	assert.True(t, pos.Shares.Equal(dec(20)), "shares: %s", pos.Shares)
	assert.True(t, p.Balance.Equal(dec(500)), "balance: %s", p.Balance)
}

func TestOpen_SecondPickSameDayRejected(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)

	balance := p.Balance
	_, err = Open(&p, gmeOrder())
	assert.ErrorIs(t, err, ErrAlreadyPickedToday)

	// Failed guard must leave state untouched.
	assert.True(t, p.Balance.Equal(balance))
	assert.Len(t, p.History, 1)
}

func TestOpen_NextDayAllowed(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)

	o := gmeOrder()
	o.Today = "2026-09-01"
	_, err = Open(&p, o)
	require.NoError(t, err)
	assert.Len(t, p.History, 2)
	assert.Equal(t, "2026-09-01", p.LastPickDate)
}

func TestOpen_Guards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OpenOrder)
		wantErr error
	}{
		{"insufficient funds", func(o *OpenOrder) { o.Investment = dec(1500) }, ErrInsufficientFunds},
		{"zero investment", func(o *OpenOrder) { o.Investment = decimal.Zero }, ErrInvalidAmount},
		{"negative investment", func(o *OpenOrder) { o.Investment = dec(-5) }, ErrInvalidAmount},
		{"zero entry price", func(o *OpenOrder) { o.EntryPrice = decimal.Zero }, ErrInvalidPrice},
		{"negative entry price", func(o *OpenOrder) { o.EntryPrice = dec(-1) }, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewPortfolio()
			o := gmeOrder()
			tt.mutate(&o)

			_, err := Open(&p, o)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, p.Balance.Equal(models.StartingBalance), "balance mutated on failed guard")
			assert.Empty(t, p.History)
			assert.Empty(t, p.LastPickDate)
		})
	}
}

func TestClose_HappyPath(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)

	pos, err := Close(&p, 0, dec(30), "2026-09-02")
	require.NoError(t, err)

	// 4 shares * 30 = 120 proceeds, 20 gain, balance 900 + 120.
	assert.True(t, p.Balance.Equal(dec(1020)), "balance: %s", p.Balance)
	assert.True(t, pos.Sold)
	require.NotNil(t, pos.SaleProceeds)
	assert.True(t, pos.SaleProceeds.Equal(dec(120)), "proceeds: %s", pos.SaleProceeds)
	require.NotNil(t, pos.GainLoss)
	assert.True(t, pos.GainLoss.Equal(dec(20)), "gain: %s", pos.GainLoss)
	assert.Equal(t, "2026-09-02", pos.SellDate)
}

func TestClose_RoundTripAtEntryPriceIsFlat(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)

	pos, err := Close(&p, 0, dec(25), "2026-09-01")
	require.NoError(t, err)
	assert.True(t, pos.GainLoss.IsZero(), "gain: %s", pos.GainLoss)
	assert.True(t, p.Balance.Equal(models.StartingBalance), "balance: %s", p.Balance)
}

func TestClose_InvalidIndex(t *testing.T) {
	p := models.NewPortfolio()

	_, err := Close(&p, 0, dec(30), "2026-08-31")
	assert.ErrorIs(t, err, ErrInvalidIndex)

	_, err = Close(&p, -1, dec(30), "2026-08-31")
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestClose_AlreadySold(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)
	_, err = Close(&p, 0, dec(30), "2026-09-01")
	require.NoError(t, err)

	before := p.History[0]
	balance := p.Balance

	_, err = Close(&p, 0, dec(50), "2026-09-02")
	assert.ErrorIs(t, err, ErrAlreadySold)

	// The sold position is terminal: nothing changed.
	assert.Equal(t, before, p.History[0])
	assert.True(t, p.Balance.Equal(balance))
}

func TestOpenPositions(t *testing.T) {
	p := models.NewPortfolio()
	assert.Empty(t, OpenPositions(&p))

	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)
	o := gmeOrder()
	o.Today = "2026-09-01"
	o.Ticker = "AMC"
	_, err = Open(&p, o)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, OpenPositions(&p))

	_, err = Close(&p, 0, dec(30), "2026-09-02")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, OpenPositions(&p))
}

func TestTotalInvested_IncludesSoldPositions(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)
	_, err = Close(&p, 0, dec(30), "2026-09-01")
	require.NoError(t, err)

	o := gmeOrder()
	o.Today = "2026-09-02"
	o.Investment = dec(250)
	_, err = Open(&p, o)
	require.NoError(t, err)

	assert.True(t, TotalInvested(&p).Equal(dec(350)), "invested: %s", TotalInvested(&p))
}

func TestPortfolioValue(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)

	lookup := func(string) (decimal.Decimal, error) { return dec(30), nil }

	// 900 cash + 4 shares * 30.
	value, err := PortfolioValue(&p, lookup)
	require.NoError(t, err)
	assert.True(t, value.Equal(dec(1020)), "value: %s", value)

	gain, err := TotalGainLoss(&p, lookup)
	require.NoError(t, err)
	assert.True(t, gain.Equal(dec(20)), "gain: %s", gain)
}

func TestPortfolioValue_IgnoresSoldPositions(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)
	_, err = Close(&p, 0, dec(30), "2026-09-01")
	require.NoError(t, err)

	calls := 0
	lookup := func(string) (decimal.Decimal, error) {
		calls++
		return dec(999), nil
	}

	value, err := PortfolioValue(&p, lookup)
	require.NoError(t, err)
	assert.Zero(t, calls, "sold positions must not be priced")
	assert.True(t, value.Equal(dec(1020)))
}

func TestPortfolioValue_LookupErrorPropagates(t *testing.T) {
	p := models.NewPortfolio()
	_, err := Open(&p, gmeOrder())
	require.NoError(t, err)

	boom := errors.New("quote feed down")
	_, err = PortfolioValue(&p, func(string) (decimal.Decimal, error) {
		return decimal.Zero, boom
	})
	assert.ErrorIs(t, err, boom)
}
