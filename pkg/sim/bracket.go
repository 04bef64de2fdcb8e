package sim

import "math/rand"

// RoundTally records how far one team got in a single simulated
// tournament. Each field is 0 or 1 for a single run.
type RoundTally struct {
	Champion     int
	Finalist     int
	Semifinalist int
}

// RunSingleTournament simulates one knockout tournament over the given
// teams and returns a per-team tally for the run. The team slice is
// shuffled in place to randomize bracket seeding, then halved round by
// round: adjacent teams are paired, each pairing is resolved through the
// predictor, and winners advance in pair order.
//
// Callers guarantee len(teams) is a power of two and >= 2; validation
// lives in SimulateTournament.
func RunSingleTournament(pred Predictor, teams []string, rng *rand.Rand, neutral bool) (map[string]RoundTally, error) {
	tally := make(map[string]RoundTally, len(teams))
	for _, t := range teams {
		tally[t] = RoundTally{}
	}

	rng.Shuffle(len(teams), func(i, j int) {
		teams[i], teams[j] = teams[j], teams[i]
	})

	current := teams
	for len(current) > 1 {
		n := len(current)

		// Membership of the notable rounds is marked before resolution,
		// so losers of the semifinal and final still count
		if n == 4 {
			for _, t := range current {
				entry := tally[t]
				entry.Semifinalist++
				tally[t] = entry
			}
		}
		if n == 2 {
			for _, t := range current {
				entry := tally[t]
				entry.Finalist++
				tally[t] = entry
			}
		}

		next := make([]string, 0, n/2)
		for i := 0; i < n; i += 2 {
			winner, err := ResolveMatch(pred, current[i], current[i+1], neutral, rng)
			if err != nil {
				return nil, err
			}
			next = append(next, winner)
		}
		current = next
	}

	champion := current[0]
	entry := tally[champion]
	entry.Champion++
	tally[champion] = entry

	return tally, nil
}
