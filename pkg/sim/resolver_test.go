package sim

import (
	"errors"
	"math/rand"
	"testing"
)

// stubPredictor returns a fixed probability map for every fixture and
// counts how often it was consulted
type stubPredictor struct {
	probs map[string]float64
	err   error
	calls int
}

func (s *stubPredictor) PredictMatchOutcome(home, away string, neutral bool) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.probs, nil
}

// alphaPredictor gives certain victory to whichever team name sorts first
type alphaPredictor struct{}

func (alphaPredictor) PredictMatchOutcome(home, away string, neutral bool) (map[string]float64, error) {
	if home < away {
		return map[string]float64{KeyHomeWin: 1.0}, nil
	}
	return map[string]float64{KeyAwayWin: 1.0}, nil
}

func TestResolveMatchDegenerateProbabilitiesFavourHome(t *testing.T) {
	// A model returning all zeros silently awards the home team
	pred := &stubPredictor{probs: map[string]float64{KeyHomeWin: 0, KeyDraw: 0, KeyAwayWin: 0}}
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		winner, err := ResolveMatch(pred, "Brazil", "Peru", false, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if winner != "Brazil" {
			t.Fatalf("degenerate probabilities resolved to %q, want home team", winner)
		}
	}
}

func TestResolveMatchMissingKeysDefaultToZero(t *testing.T) {
	pred := &stubPredictor{probs: map[string]float64{KeyAwayWin: 0.7}}
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		winner, err := ResolveMatch(pred, "France", "Italy", false, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if winner != "Italy" {
			t.Fatalf("winner = %q, want away team when only away_win has mass", winner)
		}
	}
}

func TestResolveMatchDrawBrokenByCoinFlip(t *testing.T) {
	pred := &stubPredictor{probs: map[string]float64{KeyDraw: 1.0}}
	rng := rand.New(rand.NewSource(11))

	counts := make(map[string]int)
	for i := 0; i < 200; i++ {
		winner, err := ResolveMatch(pred, "Spain", "Portugal", true, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		counts[winner]++
	}

	if counts["Spain"] == 0 || counts["Portugal"] == 0 {
		t.Errorf("coin flip never chose one side: %v", counts)
	}
	if counts["Spain"]+counts["Portugal"] != 200 {
		t.Errorf("winner outside the fixture: %v", counts)
	}
}

func TestResolveMatchPropagatesModelFailure(t *testing.T) {
	modelErr := errors.New("model backend down")
	pred := &stubPredictor{err: modelErr}
	rng := rand.New(rand.NewSource(1))

	_, err := ResolveMatch(pred, "Chile", "Ecuador", false, rng)
	if !errors.Is(err, modelErr) {
		t.Fatalf("expected wrapped model error, got %v", err)
	}
}
