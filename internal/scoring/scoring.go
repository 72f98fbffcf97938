package scoring

import (
	"math"
	"sort"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/models"
)

// Signal weights of the squeeze score. They sum to 1.0, so a candidate with
// every signal at 1.0 scores exactly 100.
const (
	weightShortInterest         = 0.25
	weightBorrowRate            = 0.10
	weightVolumeRatio           = 0.10
	weightSocialScore           = 0.15
	weightGammaExposure         = 0.10
	weightOptionsVolume         = 0.10
	weightInsiderActivity       = 0.05
	weightInstitutionalActivity = 0.05
	weightMacroTriggers         = 0.10
)

// Score computes the squeeze score for one set of signals: the weighted sum
// scaled to [0, 100] and rounded to two decimals. Pure function, no
// validation; callers feeding signals outside [0, 1] get a score outside
// [0, 100].
func Score(s models.Signals) float64 {
	raw := s.ShortInterest*weightShortInterest +
		s.BorrowRate*weightBorrowRate +
		s.VolumeRatio*weightVolumeRatio +
		s.SocialScore*weightSocialScore +
		s.GammaExposure*weightGammaExposure +
		s.OptionsVolume*weightOptionsVolume +
		s.InsiderActivity*weightInsiderActivity +
		s.InstitutionalActivity*weightInstitutionalActivity +
		s.MacroTriggers*weightMacroTriggers
	return math.Round(raw*100*100) / 100
}

// SelectTop scores every candidate, sorts descending by score and returns
// the first n. The sort is stable, so ties keep their input order, and the
// input slice is never modified. Calling it twice on the same input yields
// the same result.
func SelectTop(candidates []models.Candidate, n int) []models.Candidate {
	scored := make([]models.Candidate, len(candidates))
	copy(scored, candidates)
	for i := range scored {
		scored[i].SqueezeScore = Score(scored[i].Signals)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SqueezeScore > scored[j].SqueezeScore
	})

	if n > len(scored) {
		n = len(scored)
	}
	return scored[:n]
}
