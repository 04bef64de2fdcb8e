package registry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfairbrother/knocksim/pkg/store"
)

// Model run lifecycle states
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Compile-time check to ensure ModelRun implements Persistable
var _ store.Persistable = (*ModelRun)(nil)

// ModelRun is the stored record of one installed model artifact. At most
// one run is ACTIVE at a time; the active run's artifact feeds every
// simulation until another run is activated.
type ModelRun struct {
	ID           string    `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`
	CreatedAt    time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	ArtifactPath string    `json:"artifactPath" column:"artifact_path" dbtype:"TEXT NOT NULL"`
	Status       string    `json:"status" column:"status" dbtype:"TEXT NOT NULL DEFAULT 'INACTIVE'" index:"true"`
	Notes        string    `json:"notes" column:"notes" dbtype:"TEXT"`
}

// GetTableName returns the table name for model runs
func (m *ModelRun) GetTableName() string {
	return "model_runs"
}

// GetPrimaryKey returns the primary key as a map
func (m *ModelRun) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"id": m.ID,
	}
}

// SetPrimaryKey sets the primary key from a map
func (m *ModelRun) SetPrimaryKey(pk map[string]interface{}) error {
	if id, ok := pk["id"]; ok {
		if idStr, ok := id.(string); ok {
			m.ID = idStr
			return nil
		}
		return fmt.Errorf("primary key 'id' must be a string")
	}
	return fmt.Errorf("primary key 'id' not found")
}

// BeforeSave assigns the identifier and timestamps
func (m *ModelRun) BeforeSave() error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.Status == "" {
		m.Status = StatusInactive
	}
	return nil
}

// AfterSave is called after saving the model run
func (m *ModelRun) AfterSave() error {
	return nil
}

// ListModelRuns returns the most recent model runs, newest first
func ListModelRuns(limit int) ([]*ModelRun, error) {
	rows, err := store.FindWhere(&ModelRun{}, "1=1 ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}

	runs := make([]*ModelRun, 0, len(rows))
	for _, row := range rows {
		if run, ok := row.(*ModelRun); ok {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

// latestActiveModelRun returns the most recent ACTIVE model run, or nil
// if there isn't one
func latestActiveModelRun() (*ModelRun, error) {
	rows, err := store.FindWhere(&ModelRun{}, "status = ? ORDER BY created_at DESC LIMIT 1", StatusActive)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if run, ok := rows[0].(*ModelRun); ok {
		return run, nil
	}
	return nil, fmt.Errorf("unexpected type in model run results")
}
