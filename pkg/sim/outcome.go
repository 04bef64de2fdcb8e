package sim

import "math/rand"

// Outcome is the result of a single resolved fixture
type Outcome int

const (
	HomeWin Outcome = iota
	Draw
	AwayWin
)

// Probability map keys used by predictive model collaborators
const (
	KeyHomeWin = "home_win"
	KeyDraw    = "draw"
	KeyAwayWin = "away_win"
)

func (o Outcome) String() string {
	switch o {
	case HomeWin:
		return KeyHomeWin
	case Draw:
		return KeyDraw
	case AwayWin:
		return KeyAwayWin
	default:
		return "unknown"
	}
}

// MatchProbabilities is an ordered triple of outcome probabilities for one
// fixture. Values need not sum to one on input; Normalize repairs that.
type MatchProbabilities struct {
	HomeWin float64
	Draw    float64
	AwayWin float64
}

// Normalize scales the triple to sum to one. A non-positive sum collapses
// to a certain home win rather than an error; models occasionally return
// an all-zero vector and the bracket still needs a winner.
func (p *MatchProbabilities) Normalize() {
	total := p.HomeWin + p.Draw + p.AwayWin
	if total <= 0 {
		p.HomeWin = 1.0
		p.Draw = 0.0
		p.AwayWin = 0.0
		return
	}
	p.HomeWin /= total
	p.Draw /= total
	p.AwayWin /= total
}

// DrawOutcome performs one categorical draw over the probability triple.
// The triple must already be normalized; the only randomness consumed is a
// single Float64 from rng.
func DrawOutcome(p MatchProbabilities, rng *rand.Rand) Outcome {
	r := rng.Float64()
	switch {
	case r < p.HomeWin:
		return HomeWin
	case r < p.HomeWin+p.Draw:
		return Draw
	default:
		return AwayWin
	}
}
