package sim

import (
	"fmt"

	"github.com/mfairbrother/knocksim/internal/logger"
)

// SimulationResult is the final artifact of one simulation request.
// Immutable once built; handed to the persistence collaborator for
// storage and to the caller for display.
type SimulationResult struct {
	ID         string                `json:"simulation_id"`
	Teams      []string              `json:"teams"`
	Runs       int                   `json:"n_runs"`
	Neutral    bool                  `json:"neutral"`
	Seed       int64                 `json:"seed"`
	ModelRunID string                `json:"model_run_id,omitempty"`
	Results    map[string]TeamResult `json:"results"`
}

// Recorder is the contract exposed to the persistence collaborator:
// store one result, get back an identifier.
type Recorder interface {
	SaveSimulation(res *SimulationResult) (string, error)
}

// ModelSource supplies the currently active predictive model and the
// identifier of the model run that produced it. Returns
// ErrModelUnavailable when nothing is active.
type ModelSource interface {
	ActivePredictor() (Predictor, string, error)
}

// IsPowerOfTwo reports whether n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// DedupeTeams collapses duplicate team names, preserving the order of
// first occurrence.
func DedupeTeams(teams []string) []string {
	seen := make(map[string]bool, len(teams))
	unique := make([]string, 0, len(teams))
	for _, t := range teams {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}
	return unique
}

// ValidateTeams applies the bracket preconditions to an already
// deduplicated team list.
func ValidateTeams(teams []string) error {
	if len(teams) < 2 {
		return fmt.Errorf("%w: need at least 2 teams to simulate a tournament", ErrInvalidInput)
	}
	if !IsPowerOfTwo(len(teams)) {
		return fmt.Errorf("%w: team count must be a power of two for a knockout bracket, got %d", ErrInvalidInput, len(teams))
	}
	return nil
}

// SimulateTournament validates the request, deduplicates the team list
// and drives the Monte Carlo aggregator. The returned result carries no
// identifier or model linkage; Service adds those when persisting.
func SimulateTournament(pred Predictor, teams []string, nRuns int, neutral bool, seed int64) (*SimulationResult, error) {
	unique := DedupeTeams(teams)
	if err := ValidateTeams(unique); err != nil {
		return nil, err
	}
	if nRuns <= 0 {
		return nil, fmt.Errorf("%w: n_runs must be positive, got %d", ErrInvalidInput, nRuns)
	}
	if pred == nil {
		return nil, ErrModelUnavailable
	}

	results, err := Aggregate(pred, unique, nRuns, neutral, seed)
	if err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	return &SimulationResult{
		Teams:   unique,
		Runs:    nRuns,
		Neutral: neutral,
		Seed:    seed,
		Results: results,
	}, nil
}

// Service ties the simulation core to its collaborators: the model
// registry supplying the active predictor and the store recording
// results. Each request owns its own generator and tallies, so a single
// Service is safe for concurrent use as long as its collaborators are.
type Service struct {
	Models   ModelSource
	Recorder Recorder
}

// Simulate runs one full simulation request with the active model and
// the configured default seed, persists the result and returns it with
// its identifier and model linkage filled in. Fails fast when no model
// is active rather than partway through the run loop.
func (s *Service) Simulate(teams []string, nRuns int, neutral bool) (*SimulationResult, error) {
	unique := DedupeTeams(teams)
	if err := ValidateTeams(unique); err != nil {
		return nil, err
	}
	if nRuns <= 0 {
		nRuns = Config.DefaultRuns
	}
	if nRuns > Config.MaxRuns {
		return nil, fmt.Errorf("%w: n_runs must be at most %d, got %d", ErrInvalidInput, Config.MaxRuns, nRuns)
	}

	pred, modelRunID, err := s.Models.ActivePredictor()
	if err != nil {
		return nil, err
	}

	logger.Info("Simulating knockout tournament", len(unique), "teams", nRuns, "runs")

	res, err := SimulateTournament(pred, unique, nRuns, neutral, Config.DefaultSeed)
	if err != nil {
		return nil, err
	}
	res.ModelRunID = modelRunID

	if s.Recorder != nil {
		id, err := s.Recorder.SaveSimulation(res)
		if err != nil {
			return nil, fmt.Errorf("failed to persist simulation result: %w", err)
		}
		res.ID = id
	}

	logger.Info("Simulation complete", res.ID)
	return res, nil
}
