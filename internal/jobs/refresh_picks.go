package jobs

import (
	"time"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/storage"
)

// RefreshPicks regenerates the daily picks document on schedule so the file
// rolls over to the new date even when no request comes in. Reads still
// regenerate lazily when they find a stale document, this job just keeps
// the file warm.
type RefreshPicks struct {
	store *storage.Store
	now   func() time.Time
}

// NewRefreshPicks returns the job bound to a store.
func NewRefreshPicks(store *storage.Store) *RefreshPicks {
	return &RefreshPicks{store: store, now: time.Now}
}

func (j *RefreshPicks) Name() string { return "refresh_picks" }

func (j *RefreshPicks) Run() error {
	today := j.now().Format("2006-01-02")
	j.store.RegeneratePicks(today)
	return nil
}
