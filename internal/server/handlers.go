package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/ledger"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/models"
)

const dateFormat = "2006-01-02"

func (s *Server) today() string {
	return s.now().Format(dateFormat)
}

// lookupWithFallback resolves a price through the provider, substituting
// the configured fallback when the feed fails. The fallback decision
// happens here, visibly, so the ledger only ever sees a price it can use.
// usedFallback reports whether any lookup fell back.
func (s *Server) lookupWithFallback(usedFallback *bool) ledger.PriceLookup {
	return func(ticker string) (decimal.Decimal, error) {
		price, err := s.provider.CurrentPrice(ticker)
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker).
				Str("fallback", s.cfg.FallbackPrice.String()).
				Msg("Price lookup failed, using fallback")
			*usedFallback = true
			return s.cfg.FallbackPrice, nil
		}
		return price, nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetPicks returns today's two candidates, regenerating the picks
// document if the stored one has gone stale.
func (s *Server) handleGetPicks(w http.ResponseWriter, r *http.Request) {
	doc := s.store.LoadPicks(s.today())
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p := s.store.LoadPortfolio()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"balance":        p.Balance,
		"history":        p.History,
		"last_pick_date": p.LastPickDate,
		"total_invested": ledger.TotalInvested(&p),
		"open_positions": ledger.OpenPositions(&p),
	})
}

// handleGetValue marks the open positions to market. Feed failures are
// absorbed with the fallback price and flagged in the response.
func (s *Server) handleGetValue(w http.ResponseWriter, r *http.Request) {
	p := s.store.LoadPortfolio()

	usedFallback := false
	lookup := s.lookupWithFallback(&usedFallback)

	value, err := ledger.PortfolioValue(&p, lookup)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Derived from the value we already have, so the feed is hit once.
	gain := value.Sub(models.StartingBalance)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"balance":         p.Balance,
		"portfolio_value": value.Round(2),
		"total_gain_loss": gain.Round(2),
		"price_fallback":  usedFallback,
	})
}

type buyRequest struct {
	Ticker     string          `json:"ticker"`
	Investment decimal.Decimal `json:"investment"`
}

// handleBuy opens today's position: the ticker must be one of today's two
// picks, the entry price and day range are snapshotted from the provider,
// then the ledger takes over.
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	today := s.today()
	doc := s.store.LoadPicks(today)

	var pick *models.Candidate
	for i := range doc.Picks {
		if doc.Picks[i].Ticker == req.Ticker {
			pick = &doc.Picks[i]
			break
		}
	}
	if pick == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "ticker is not one of today's picks")
		return
	}

	usedFallback := false
	entryPrice, _ := s.lookupWithFallback(&usedFallback)(req.Ticker)

	// Day range is informational only; on feed failure the snapshot
	// records zeros.
	high, low, err := s.provider.DayRange(req.Ticker)
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", req.Ticker).Msg("Day range unavailable")
		high, low = decimal.Zero, decimal.Zero
	}

	p := s.store.LoadPortfolio()
	pos, err := ledger.Open(&p, ledger.OpenOrder{
		Ticker:     req.Ticker,
		Score:      pick.SqueezeScore,
		Investment: req.Investment,
		EntryPrice: entryPrice,
		DayHigh:    high,
		DayLow:     low,
		Today:      today,
	})
	if err != nil {
		s.writeError(w, ledgerStatus(err), err.Error())
		return
	}

	if err := s.store.SavePortfolio(p); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to persist portfolio")
		return
	}

	s.log.Info().Str("ticker", req.Ticker).
		Str("investment", req.Investment.String()).
		Str("entry_price", entryPrice.String()).
		Msg("Position opened")

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"position":       pos,
		"balance":        p.Balance,
		"price_fallback": usedFallback,
	})
}

type sellRequest struct {
	Index int `json:"index"`
}

// handleSell closes the referenced position at the current market price
// (or the fallback price when the feed is down).
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := s.store.LoadPortfolio()
	if req.Index < 0 || req.Index >= len(p.History) {
		s.writeError(w, http.StatusNotFound, ledger.ErrInvalidIndex.Error())
		return
	}

	usedFallback := false
	exitPrice, _ := s.lookupWithFallback(&usedFallback)(p.History[req.Index].Ticker)

	pos, err := ledger.Close(&p, req.Index, exitPrice, s.today())
	if err != nil {
		s.writeError(w, ledgerStatus(err), err.Error())
		return
	}

	if err := s.store.SavePortfolio(p); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to persist portfolio")
		return
	}

	s.log.Info().Str("ticker", pos.Ticker).
		Str("exit_price", exitPrice.String()).
		Str("gain_loss", pos.GainLoss.String()).
		Msg("Position closed")

	s.writeJSON(w, http.StatusOK, map[string]any{
		"position":       pos,
		"balance":        p.Balance,
		"price_fallback": usedFallback,
	})
}

// ledgerStatus maps ledger guard failures to HTTP statuses. Everything the
// ledger rejects is a user-recoverable condition, never a 5xx.
func ledgerStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAlreadyPickedToday),
		errors.Is(err, ledger.ErrAlreadySold):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrInvalidIndex):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
