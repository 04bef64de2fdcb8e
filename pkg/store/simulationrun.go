package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfairbrother/knocksim/internal/logger"
	"github.com/mfairbrother/knocksim/pkg/sim"
)

// Compile-time check to ensure SimulationRun implements Persistable
var _ Persistable = (*SimulationRun)(nil)

// SimulationRun is the stored record of one simulation request: the
// deduplicated team list, the run count and the per-team summary, plus a
// link to the model run that produced the probabilities.
type SimulationRun struct {
	ID         string    `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`
	CreatedAt  time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	Teams      string    `json:"teams" column:"teams" dbtype:"TEXT NOT NULL"` // JSON array of team names
	Runs       int       `json:"nRuns" column:"n_runs" dbtype:"INTEGER NOT NULL"`
	Neutral    bool      `json:"neutral" column:"neutral" dbtype:"INTEGER DEFAULT 0"`
	Seed       int64     `json:"seed" column:"seed" dbtype:"INTEGER DEFAULT 0"`
	Results    string    `json:"results" column:"results" dbtype:"TEXT NOT NULL"` // JSON per-team summary
	ModelRunID string    `json:"modelRunId" column:"model_run_id" dbtype:"TEXT" index:"true"`
	Notes      string    `json:"notes" column:"notes" dbtype:"TEXT"`
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetTableName returns the table name for simulation runs
func (s *SimulationRun) GetTableName() string {
	return "simulation_runs"
}

// GetPrimaryKey returns the primary key as a map
func (s *SimulationRun) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"id": s.ID,
	}
}

// SetPrimaryKey sets the primary key from a map
func (s *SimulationRun) SetPrimaryKey(pk map[string]interface{}) error {
	if id, ok := pk["id"]; ok {
		if idStr, ok := id.(string); ok {
			s.ID = idStr
			return nil
		}
		return fmt.Errorf("primary key 'id' must be a string")
	}
	return fmt.Errorf("primary key 'id' not found")
}

// BeforeSave assigns the identifier and timestamps
func (s *SimulationRun) BeforeSave() error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return nil
}

// AfterSave is called after saving the run
func (s *SimulationRun) AfterSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Simulation Result Storage
/////////////////////////////////////////////////////////////////////////

// Init creates the simulation run table
func Init() error {
	if err := CreateTable(&SimulationRun{}); err != nil {
		return fmt.Errorf("failed to create simulation run table: %w", err)
	}
	return nil
}

// Recorder persists simulation results and satisfies the core's
// persistence contract
type Recorder struct{}

var _ sim.Recorder = Recorder{}

// SaveSimulation stores one simulation result and returns its identifier
func (Recorder) SaveSimulation(res *sim.SimulationResult) (string, error) {
	teams, err := json.Marshal(res.Teams)
	if err != nil {
		return "", fmt.Errorf("failed to encode team list: %w", err)
	}
	results, err := json.Marshal(res.Results)
	if err != nil {
		return "", fmt.Errorf("failed to encode simulation results: %w", err)
	}

	run := &SimulationRun{
		ID:         res.ID,
		Teams:      string(teams),
		Runs:       res.Runs,
		Neutral:    res.Neutral,
		Seed:       res.Seed,
		Results:    string(results),
		ModelRunID: res.ModelRunID,
		Notes:      "Knockout tournament simulation",
	}

	if err := Save(run); err != nil {
		return "", err
	}

	logger.Debug("Saved simulation run", run.ID)
	return run.ID, nil
}

// GetSimulation fetches a previously saved simulation result by id
func GetSimulation(id string) (*sim.SimulationResult, error) {
	run := &SimulationRun{ID: id}
	if err := FindByPrimaryKey(run, run.GetPrimaryKey()); err != nil {
		return nil, err
	}
	return run.Result()
}

// ListSimulations returns the most recent simulation runs, newest first
func ListSimulations(limit int) ([]*SimulationRun, error) {
	rows, err := FindWhere(&SimulationRun{}, "1=1 ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}

	runs := make([]*SimulationRun, 0, len(rows))
	for _, row := range rows {
		if run, ok := row.(*SimulationRun); ok {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

// Result decodes the stored record back into a SimulationResult
func (s *SimulationRun) Result() (*sim.SimulationResult, error) {
	var teams []string
	if err := json.Unmarshal([]byte(s.Teams), &teams); err != nil {
		return nil, fmt.Errorf("failed to decode team list for simulation %s: %w", s.ID, err)
	}

	var results map[string]sim.TeamResult
	if err := json.Unmarshal([]byte(s.Results), &results); err != nil {
		return nil, fmt.Errorf("failed to decode results for simulation %s: %w", s.ID, err)
	}

	return &sim.SimulationResult{
		ID:         s.ID,
		Teams:      teams,
		Runs:       s.Runs,
		Neutral:    s.Neutral,
		Seed:       s.Seed,
		ModelRunID: s.ModelRunID,
		Results:    results,
	}, nil
}
