package sim

import (
	"fmt"
	"math/rand"
)

// Predictor is the contract consumed from the predictive model
// collaborator. Implementations return a probability map keyed by
// "home_win", "draw" and "away_win"; missing keys imply 0.0.
// How the distribution is produced is of no interest to the simulation.
type Predictor interface {
	PredictMatchOutcome(home string, away string, neutral bool) (map[string]float64, error)
}

// ResolveMatch resolves one fixture to a single advancing team.
// The model's probability triple is renormalized before sampling and a
// sampled draw is broken by a fair coin flip from the same rng, since a
// knockout bracket always needs exactly one winner. A model failure
// propagates and aborts the caller's whole simulation.
func ResolveMatch(pred Predictor, home string, away string, neutral bool, rng *rand.Rand) (string, error) {
	raw, err := pred.PredictMatchOutcome(home, away, neutral)
	if err != nil {
		return "", fmt.Errorf("prediction failed for %s v %s: %w", home, away, err)
	}

	probs := MatchProbabilities{
		HomeWin: raw[KeyHomeWin],
		Draw:    raw[KeyDraw],
		AwayWin: raw[KeyAwayWin],
	}
	probs.Normalize()

	switch DrawOutcome(probs, rng) {
	case HomeWin:
		return home, nil
	case AwayWin:
		return away, nil
	default:
		// drawn ties are settled by a coin flip
		if rng.Float64() < 0.5 {
			return home, nil
		}
		return away, nil
	}
}
