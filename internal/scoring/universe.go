package scoring

import "github.com/abilityofwillity/paper-squeeze-trader/internal/models"

// DefaultUniverse returns the curated candidate set the daily picks are
// drawn from. Signal values are static placeholders until a real signal
// feed exists; scores are left unset and filled in by SelectTop.
func DefaultUniverse() []models.Candidate {
	return []models.Candidate{
		{
			Ticker: "GME",
			Signals: models.Signals{
				ShortInterest:         0.92,
				BorrowRate:            0.87,
				VolumeRatio:           0.76,
				SocialScore:           0.89,
				GammaExposure:         0.82,
				OptionsVolume:         0.80,
				InsiderActivity:       0.20,
				InstitutionalActivity: 0.40,
				MacroTriggers:         0.60,
			},
		},
		{
			Ticker: "AMC",
			Signals: models.Signals{
				ShortInterest:         0.88,
				BorrowRate:            0.83,
				VolumeRatio:           0.68,
				SocialScore:           0.90,
				GammaExposure:         0.75,
				OptionsVolume:         0.77,
				InsiderActivity:       0.10,
				InstitutionalActivity: 0.50,
				MacroTriggers:         0.50,
			},
		},
		{
			Ticker: "BBBY",
			Signals: models.Signals{
				ShortInterest:         0.91,
				BorrowRate:            0.70,
				VolumeRatio:           0.60,
				SocialScore:           0.78,
				GammaExposure:         0.80,
				OptionsVolume:         0.73,
				InsiderActivity:       0.25,
				InstitutionalActivity: 0.60,
				MacroTriggers:         0.45,
			},
		},
		{
			Ticker: "KOSS",
			Signals: models.Signals{
				ShortInterest:         0.85,
				BorrowRate:            0.67,
				VolumeRatio:           0.72,
				SocialScore:           0.84,
				GammaExposure:         0.70,
				OptionsVolume:         0.75,
				InsiderActivity:       0.30,
				InstitutionalActivity: 0.50,
				MacroTriggers:         0.40,
			},
		},
	}
}
