package ratings

import (
	"fmt"
	"math"

	"github.com/mfairbrother/knocksim/pkg/sim"
)

// Compile-time check that an Artifact can serve as the simulation core's
// predictive model collaborator
var _ sim.Predictor = (*Artifact)(nil)

// winExpectancy is the standard Elo curve: the probability that a side
// rated a beats a side rated b, ignoring draws
func winExpectancy(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400.0))
}

// PredictMatchOutcome returns the outcome probability triple for one
// fixture as a map keyed by "home_win", "draw" and "away_win".
//
// The draw probability peaks for evenly matched sides and is scaled by
// the artifact's draw factor; the remainder is split by Elo win
// expectancy. The home advantage bonus is suppressed for neutral-site
// fixtures. Unknown teams fall back to the default rating.
func (a *Artifact) PredictMatchOutcome(home string, away string, neutral bool) (map[string]float64, error) {
	if len(a.Ratings) == 0 {
		return nil, fmt.Errorf("ratings artifact has no rating table")
	}

	homeRating := a.rating(home)
	awayRating := a.rating(away)
	if !neutral {
		homeRating += a.HomeAdvantage
	}

	w := winExpectancy(homeRating, awayRating)
	pDraw := 2.0 * w * (1.0 - w) * a.DrawFactor
	pHome := (1.0 - pDraw) * w
	pAway := 1.0 - pHome - pDraw

	return map[string]float64{
		sim.KeyHomeWin: pHome,
		sim.KeyDraw:    pDraw,
		sim.KeyAwayWin: pAway,
	}, nil
}
