package sim

import "math/rand"

// TeamResult holds the accumulated counters for one team across all runs
// of a simulation request, plus the derived probabilities (count / runs).
type TeamResult struct {
	ChampionCount  int     `json:"wins"`
	FinalistCount  int     `json:"finals"`
	SemifinalCount int     `json:"semis"`
	ChampionProb   float64 `json:"win_prob"`
	FinalistProb   float64 `json:"final_prob"`
	SemifinalProb  float64 `json:"semi_prob"`
}

// Aggregate runs the bracket engine nRuns times and accumulates per-team
// counts into probabilities.
//
// A single generator seeded once drives every run: the whole multi-run
// simulation is reproducible end to end for a fixed seed, team list and
// predictor, with generator state advancing monotonically across runs.
// Runs are therefore not independent random streams and must not be
// reseeded individually.
func Aggregate(pred Predictor, teams []string, nRuns int, neutral bool, seed int64) (map[string]TeamResult, error) {
	rng := rand.New(rand.NewSource(seed))

	// one mutable round pool, reshuffled by every run
	pool := make([]string, len(teams))
	copy(pool, teams)

	totals := make(map[string]RoundTally, len(teams))
	for _, t := range teams {
		totals[t] = RoundTally{}
	}

	for i := 0; i < nRuns; i++ {
		single, err := RunSingleTournament(pred, pool, rng, neutral)
		if err != nil {
			return nil, err
		}
		for team, s := range single {
			entry := totals[team]
			entry.Champion += s.Champion
			entry.Finalist += s.Finalist
			entry.Semifinalist += s.Semifinalist
			totals[team] = entry
		}
	}

	results := make(map[string]TeamResult, len(teams))
	for team, s := range totals {
		results[team] = TeamResult{
			ChampionCount:  s.Champion,
			FinalistCount:  s.Finalist,
			SemifinalCount: s.Semifinalist,
			ChampionProb:   float64(s.Champion) / float64(nRuns),
			FinalistProb:   float64(s.Finalist) / float64(nRuns),
			SemifinalProb:  float64(s.Semifinalist) / float64(nRuns),
		}
	}

	return results, nil
}
