package models

import "github.com/shopspring/decimal"

// StartingBalance is the paper bankroll every new portfolio begins with.
var StartingBalance = decimal.NewFromFloat(1000.00)

// Signals holds the nine normalized inputs of the squeeze score.
// Each value is expected in [0, 1]; out-of-range values are not rejected,
// they simply propagate into an out-of-range score.
type Signals struct {
	ShortInterest         float64 `json:"short_interest"`
	BorrowRate            float64 `json:"borrow_rate"`
	VolumeRatio           float64 `json:"volume_ratio"`
	SocialScore           float64 `json:"social_score"`
	GammaExposure         float64 `json:"gamma_exposure"`
	OptionsVolume         float64 `json:"options_volume"`
	InsiderActivity       float64 `json:"insider_activity"`
	InstitutionalActivity float64 `json:"institutional_activity"`
	MacroTriggers         float64 `json:"macro_triggers"`
}

// Candidate is one scored ticker in the daily picks set. Candidates are
// ephemeral: they are regenerated whenever the picks document goes stale.
type Candidate struct {
	Ticker string `json:"ticker"`
	Signals
	SqueezeScore float64 `json:"squeeze_score"`
}

// Position is one buy-to-sell lifecycle record. The exit fields are only
// populated once Sold is true; after that the record is immutable.
type Position struct {
	Date       string          `json:"date"`
	Ticker     string          `json:"ticker"`
	Score      float64         `json:"score"`
	Investment decimal.Decimal `json:"investment"`
	Shares     decimal.Decimal `json:"shares"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	High       decimal.Decimal `json:"high"`
	Low        decimal.Decimal `json:"low"`
	Sold       bool            `json:"sold"`

	ExitPrice    *decimal.Decimal `json:"exit_price,omitempty"`
	SaleProceeds *decimal.Decimal `json:"sale_proceeds,omitempty"`
	GainLoss     *decimal.Decimal `json:"gain_loss,omitempty"`
	SellDate     string           `json:"sell_date,omitempty"`
}

// Portfolio is the aggregate root: cash balance, full position history in
// chronological order, and the one-pick-per-day guard. It is persisted as a
// single JSON document and rewritten wholesale on every mutation.
type Portfolio struct {
	Balance      decimal.Decimal `json:"balance"`
	History      []Position      `json:"history"`
	LastPickDate string          `json:"last_pick_date,omitempty"`
}

// NewPortfolio returns a fresh portfolio with the starting bankroll and no
// history.
func NewPortfolio() Portfolio {
	return Portfolio{
		Balance: StartingBalance,
		History: []Position{},
	}
}

// PicksDocument is the persisted daily picks file: the calendar date it was
// generated for and the two top-ranked candidates for that day.
type PicksDocument struct {
	Date  string      `json:"date"`
	Picks []Candidate `json:"picks"`
}
