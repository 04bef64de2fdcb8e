package ratings

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mfairbrother/knocksim/internal/logger"
	"github.com/mfairbrother/knocksim/pkg/sim"
)

// Artifact is a predictive model artifact: a table of team strength
// ratings plus the shape parameters of the outcome curve. Artifacts are
// plain data files; they are installed and activated, never trained here.
type Artifact struct {
	Name          string             `json:"name,omitempty"`
	Ratings       map[string]float64 `json:"ratings"`
	HomeAdvantage float64            `json:"homeAdvantage,omitempty"`
	DrawFactor    float64            `json:"drawFactor,omitempty"`
	DefaultRating float64            `json:"defaultRating,omitempty"`
}

// LoadArtifact reads a ratings artifact from a JSON file, filling any
// omitted curve parameters from the configured defaults.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings artifact %s: %w", path, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse ratings artifact %s: %w", path, err)
	}

	artifact.applyDefaults()
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ratings artifact %s: %w", path, err)
	}

	logger.Debug("Loaded ratings artifact", path, len(artifact.Ratings))
	return &artifact, nil
}

func (a *Artifact) applyDefaults() {
	if a.HomeAdvantage == 0 {
		a.HomeAdvantage = sim.Config.DefaultHomeAdvantage
	}
	if a.DrawFactor == 0 {
		a.DrawFactor = sim.Config.DefaultDrawFactor
	}
	if a.DefaultRating == 0 {
		a.DefaultRating = sim.Config.DefaultRating
	}
}

// Validate ensures the artifact can produce sane probability triples
func (a *Artifact) Validate() error {
	if len(a.Ratings) == 0 {
		return fmt.Errorf("ratings table is empty")
	}
	if a.DrawFactor < 0.0 || a.DrawFactor > 1.0 {
		return fmt.Errorf("drawFactor must be between 0.0 and 1.0, got: %f", a.DrawFactor)
	}
	if a.DefaultRating <= 0 {
		return fmt.Errorf("defaultRating must be positive, got: %f", a.DefaultRating)
	}
	return nil
}

// Teams returns the sorted unique team names known to this artifact.
// This backs the team catalog used by selection UIs; the simulation core
// itself accepts any team name.
func (a *Artifact) Teams() []string {
	teams := make([]string, 0, len(a.Ratings))
	for t := range a.Ratings {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

func (a *Artifact) rating(team string) float64 {
	if r, ok := a.Ratings[team]; ok {
		return r
	}
	return a.DefaultRating
}
