package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SimConfig contains all configurable parameters that influence simulation outcomes
// This centralizes all magic numbers and constants for easy adjustment
type SimConfig struct {
	// Filesystem layout
	AssetsPath string `yaml:"assetsPath"` // The base directory of knocksim assets
	DbPath     string `yaml:"dbPath"`     // The location of the knocksim sqlite database

	// === CORE SIMULATION PARAMETERS ===

	DefaultRuns int   `yaml:"defaultRuns"` // Number of Monte Carlo runs when the caller gives none (default: 1000)
	DefaultSeed int64 `yaml:"defaultSeed"` // Seed for the per-request random stream (default: 42)
	MaxRuns     int   `yaml:"maxRuns"`     // Upper bound on runs per request (default: 1000000)

	// === RATING MODEL DEFAULTS ===

	// Used by ratings artifacts that omit these fields
	DefaultRating        float64 `yaml:"defaultRating"`        // Rating assumed for unknown teams (default: 1500)
	DefaultHomeAdvantage float64 `yaml:"defaultHomeAdvantage"` // Rating bonus for the home side (default: 50)
	DefaultDrawFactor    float64 `yaml:"defaultDrawFactor"`    // Scales the draw probability curve (default: 0.4)
}

// DefaultSimConfig returns the default configuration with all standard values
func DefaultSimConfig() *SimConfig {
	assetsPath := os.Getenv("HOME") + "/.knocksim/"
	return &SimConfig{
		AssetsPath: assetsPath,
		DbPath:     assetsPath + "knocksim.db",

		DefaultRuns: 1000,
		DefaultSeed: 42,
		MaxRuns:     1000000,

		DefaultRating:        1500.0,
		DefaultHomeAdvantage: 50.0,
		DefaultDrawFactor:    0.4,
	}
}

// Global configuration instance
var Config *SimConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultSimConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *SimConfig) {
	Config = newConfig
}

// LoadConfig reads a YAML configuration file and overlays it on the defaults
func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultSimConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := ValidateConfig(config); err != nil {
		return err
	}

	Config = config
	return nil
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *SimConfig) error {
	if config.DefaultRuns < 1 {
		return fmt.Errorf("DefaultRuns must be at least 1, got: %d", config.DefaultRuns)
	}

	if config.MaxRuns < config.DefaultRuns {
		return fmt.Errorf("MaxRuns must be >= DefaultRuns, got: %d", config.MaxRuns)
	}

	if config.DefaultDrawFactor < 0.0 || config.DefaultDrawFactor > 1.0 {
		return fmt.Errorf("DefaultDrawFactor must be between 0.0 and 1.0, got: %f", config.DefaultDrawFactor)
	}

	if config.DefaultRating <= 0 {
		return fmt.Errorf("DefaultRating must be positive, got: %f", config.DefaultRating)
	}

	return nil
}
