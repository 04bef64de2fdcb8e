package sim

import (
	"reflect"
	"testing"
)

func TestAggregateCountConservation(t *testing.T) {
	teams := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	nRuns := 25

	results, err := Aggregate(evenPredictor(), teams, nRuns, false, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var champions, finalists, semifinalists int
	for team, r := range results {
		champions += r.ChampionCount
		finalists += r.FinalistCount
		semifinalists += r.SemifinalCount

		for _, p := range []float64{r.ChampionProb, r.FinalistProb, r.SemifinalProb} {
			if p < 0.0 || p > 1.0 {
				t.Errorf("team %s probability %f out of [0, 1]", team, p)
			}
		}

		// probabilities are exact ratios, not approximations
		if r.ChampionProb != float64(r.ChampionCount)/float64(nRuns) ||
			r.FinalistProb != float64(r.FinalistCount)/float64(nRuns) ||
			r.SemifinalProb != float64(r.SemifinalCount)/float64(nRuns) {
			t.Errorf("team %s probabilities are not count/nRuns: %+v", team, r)
		}
	}

	if champions != nRuns {
		t.Errorf("total champion count = %d, want %d", champions, nRuns)
	}
	if finalists != 2*nRuns {
		t.Errorf("total finalist count = %d, want %d", finalists, 2*nRuns)
	}
	if semifinalists != 4*nRuns {
		t.Errorf("total semifinalist count = %d, want %d", semifinalists, 4*nRuns)
	}
}

func TestAggregateDeterministicForFixedSeed(t *testing.T) {
	teams := []string{"A", "B", "C", "D"}

	first, err := Aggregate(evenPredictor(), teams, 100, false, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Aggregate(evenPredictor(), teams, 100, false, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two aggregations with identical seed and inputs differ")
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	teams := []string{"A", "B", "C", "D"}
	want := []string{"A", "B", "C", "D"}

	if _, err := Aggregate(evenPredictor(), teams, 10, false, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(teams, want) {
		t.Errorf("input team list mutated: %v", teams)
	}
}

func TestAggregateTwoTeamBracketHasNoSemifinals(t *testing.T) {
	results, err := Aggregate(evenPredictor(), []string{"A", "B"}, 30, false, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for team, r := range results {
		if r.SemifinalCount != 0 || r.SemifinalProb != 0.0 {
			t.Errorf("team %s has semifinal tally %+v in a 2-team bracket", team, r)
		}
		if r.FinalistCount != 30 {
			t.Errorf("team %s finalist count = %d, want 30", team, r.FinalistCount)
		}
	}
}
