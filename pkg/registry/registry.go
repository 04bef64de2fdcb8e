package registry

import (
	"fmt"
	"sync"

	"github.com/mfairbrother/knocksim/internal/logger"
	"github.com/mfairbrother/knocksim/pkg/ratings"
	"github.com/mfairbrother/knocksim/pkg/sim"
	"github.com/mfairbrother/knocksim/pkg/store"
)

// Snapshot is an immutable view of the active model: the run record it
// came from and the loaded ratings artifact. Readers always see either
// the fully-old or fully-new snapshot, never a partially swapped one.
type Snapshot struct {
	RunID    string
	Artifact *ratings.Artifact
}

// Registry owns the active model artifact as an explicitly swappable
// snapshot. Loading and activation take the write lock; in-flight
// simulations read whichever snapshot was current when they started.
type Registry struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

var _ sim.ModelSource = (*Registry)(nil)

// New returns a registry with no snapshot loaded; the active model is
// looked up lazily from the store on first use.
func New() *Registry {
	return &Registry{}
}

// Init creates the model run table
func Init() error {
	if err := store.CreateTable(&ModelRun{}); err != nil {
		return fmt.Errorf("failed to create model run table: %w", err)
	}
	return nil
}

// Install registers a new model run for the given artifact file and
// activates it. The artifact is loaded up front so a broken file is
// rejected at install time, not mid-simulation.
func (r *Registry) Install(artifactPath string, notes string) (*ModelRun, error) {
	artifact, err := ratings.LoadArtifact(artifactPath)
	if err != nil {
		return nil, err
	}

	run := &ModelRun{
		ArtifactPath: artifactPath,
		Status:       StatusInactive,
		Notes:        notes,
	}
	if err := store.Save(run); err != nil {
		return nil, fmt.Errorf("failed to register model run: %w", err)
	}

	if err := r.activateLoaded(run, artifact); err != nil {
		return nil, err
	}

	logger.Info("Installed and activated model run", run.ID, len(artifact.Ratings), "teams")
	return run, nil
}

// Activate marks the given model run as ACTIVE, all others as INACTIVE,
// and swaps the in-memory snapshot to the freshly loaded artifact.
func (r *Registry) Activate(runID string) error {
	run := &ModelRun{ID: runID}
	if err := store.FindByPrimaryKey(run, run.GetPrimaryKey()); err != nil {
		return fmt.Errorf("model run %s not found: %w", runID, err)
	}

	artifact, err := ratings.LoadArtifact(run.ArtifactPath)
	if err != nil {
		return err
	}

	return r.activateLoaded(run, artifact)
}

// activateLoaded flips run statuses in the store and publishes the new
// snapshot under the write lock
func (r *Registry) activateLoaded(run *ModelRun, artifact *ratings.Artifact) error {
	d, err := store.GetDB()
	if err != nil {
		return err
	}

	if _, err := d.Exec("UPDATE model_runs SET status = ? WHERE status = ?", StatusInactive, StatusActive); err != nil {
		return fmt.Errorf("failed to deactivate model runs: %w", err)
	}

	run.Status = StatusActive
	if err := store.Save(run); err != nil {
		return fmt.Errorf("failed to activate model run %s: %w", run.ID, err)
	}

	r.mu.Lock()
	r.snapshot = &Snapshot{RunID: run.ID, Artifact: artifact}
	r.mu.Unlock()

	logger.Info("Active model run is now", run.ID)
	return nil
}

// Invalidate drops the in-memory snapshot; the next read reloads the
// active run from the store
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.snapshot = nil
	r.mu.Unlock()
}

// Active returns the current snapshot, lazily loading the latest ACTIVE
// model run from the store when none is cached. Returns
// sim.ErrModelUnavailable when no run is active.
func (r *Registry) Active() (*Snapshot, error) {
	r.mu.RLock()
	snap := r.snapshot
	r.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot != nil {
		return r.snapshot, nil
	}

	run, err := latestActiveModelRun()
	if err != nil {
		return nil, fmt.Errorf("failed to look up active model run: %w", err)
	}
	if run == nil {
		return nil, sim.ErrModelUnavailable
	}

	artifact, err := ratings.LoadArtifact(run.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load active model artifact: %w", err)
	}

	r.snapshot = &Snapshot{RunID: run.ID, Artifact: artifact}
	logger.Debug("Loaded active model snapshot", run.ID)
	return r.snapshot, nil
}

// ActivePredictor satisfies the simulation core's model source contract
func (r *Registry) ActivePredictor() (sim.Predictor, string, error) {
	snap, err := r.Active()
	if err != nil {
		return nil, "", err
	}
	return snap.Artifact, snap.RunID, nil
}

// KnownTeams returns the sorted team names known to the active model,
// for selection UIs upstream of the simulation core
func (r *Registry) KnownTeams() ([]string, error) {
	snap, err := r.Active()
	if err != nil {
		return nil, err
	}
	return snap.Artifact.Teams(), nil
}
