// Package storage persists the portfolio and the daily picks as flat JSON
// files. Each document is read and rewritten wholesale; writes go through a
// temp file and an atomic rename. Single process, last writer wins.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/models"
)

// File names inside the data directory.
const (
	PortfolioFile = "user_portfolio.json"
	PicksFile     = "daily_picks.json"
)

// Store reads and writes the flat-file documents under one data directory.
type Store struct {
	dir string
	log zerolog.Logger
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{
		dir: dir,
		log: log.With().Str("component", "storage").Logger(),
	}, nil
}

// PortfolioPath is the absolute location of the portfolio document.
func (s *Store) PortfolioPath() string { return filepath.Join(s.dir, PortfolioFile) }

// PicksPath is the absolute location of the daily picks document.
func (s *Store) PicksPath() string { return filepath.Join(s.dir, PicksFile) }

// LoadPortfolio reads the portfolio document. A missing file yields a fresh
// default portfolio which is saved immediately so the next load finds it.
// An unreadable or corrupt file also yields the default, but is NOT saved:
// the interaction proceeds on the in-memory default and the broken file is
// only overwritten by the next successful mutation. Availability wins over
// strict durability here.
func (s *Store) LoadPortfolio() models.Portfolio {
	path := s.PortfolioPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.log.Info().Str("path", path).Msg("Portfolio file missing, creating default")
		p := models.NewPortfolio()
		if err := s.SavePortfolio(p); err != nil {
			s.log.Error().Err(err).Msg("Failed to save default portfolio")
		}
		return p
	}

	b, err := os.ReadFile(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("Portfolio file unreadable, using default")
		return models.NewPortfolio()
	}

	var p models.Portfolio
	if err := json.Unmarshal(b, &p); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("Portfolio file corrupt, using default")
		return models.NewPortfolio()
	}
	if p.History == nil {
		p.History = []models.Position{}
	}
	return p
}

// SavePortfolio writes the whole portfolio document atomically.
func (s *Store) SavePortfolio(p models.Portfolio) error {
	return s.writeJSON(s.PortfolioPath(), p)
}

// writeJSON marshals v pretty-printed and replaces path atomically:
// write temp file, sync, rename.
func (s *Store) writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	// Close before rename, required on some platforms.
	f.Close()

	return os.Rename(tmp, path)
}
