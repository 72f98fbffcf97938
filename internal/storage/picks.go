package storage

import (
	"encoding/json"
	"os"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/models"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/scoring"
)

// dailyPickCount is how many candidates are presented each day.
const dailyPickCount = 2

// LoadPicks returns the picks document for today. A missing, unreadable or
// stale document (stored date != today) is regenerated from the default
// universe, stamped with today and saved before being returned.
func (s *Store) LoadPicks(today string) models.PicksDocument {
	path := s.PicksPath()

	if b, err := os.ReadFile(path); err == nil {
		var doc models.PicksDocument
		if err := json.Unmarshal(b, &doc); err == nil && doc.Date == today {
			return doc
		}
	}

	return s.RegeneratePicks(today)
}

// RegeneratePicks recomputes today's top picks unconditionally and persists
// them. A failed save is logged and the fresh document returned anyway, so
// the caller can still serve picks.
func (s *Store) RegeneratePicks(today string) models.PicksDocument {
	doc := models.PicksDocument{
		Date:  today,
		Picks: scoring.SelectTop(scoring.DefaultUniverse(), dailyPickCount),
	}

	if err := s.writeJSON(s.PicksPath(), doc); err != nil {
		s.log.Error().Err(err).Msg("Failed to save daily picks")
	} else {
		s.log.Info().Str("date", today).Int("picks", len(doc.Picks)).Msg("Daily picks regenerated")
	}
	return doc
}
