package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSimConfig(t *testing.T) {
	config := DefaultSimConfig()
	if err := ValidateConfig(config); err != nil {
		t.Fatalf("default configuration should validate: %v", err)
	}
	if config.DefaultSeed != 42 {
		t.Errorf("default seed = %d, want 42", config.DefaultSeed)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	old := Config
	defer func() { Config = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "knocksim.yaml")
	body := "defaultRuns: 250\ndefaultSeed: 7\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Config.DefaultRuns != 250 {
		t.Errorf("DefaultRuns = %d, want 250", Config.DefaultRuns)
	}
	if Config.DefaultSeed != 7 {
		t.Errorf("DefaultSeed = %d, want 7", Config.DefaultSeed)
	}
	// untouched fields keep their defaults
	if Config.DefaultDrawFactor != 0.4 {
		t.Errorf("DefaultDrawFactor = %f, want default 0.4", Config.DefaultDrawFactor)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	old := Config
	defer func() { Config = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("defaultRuns: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for zero run count")
	}
	if Config != old {
		t.Error("a rejected config file must not replace the active configuration")
	}
}

func TestValidateConfigRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SimConfig)
	}{
		{"zero runs", func(c *SimConfig) { c.DefaultRuns = 0 }},
		{"max below default", func(c *SimConfig) { c.MaxRuns = 1; c.DefaultRuns = 10 }},
		{"draw factor above one", func(c *SimConfig) { c.DefaultDrawFactor = 1.2 }},
		{"negative rating", func(c *SimConfig) { c.DefaultRating = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultSimConfig()
			tc.mutate(config)
			if err := ValidateConfig(config); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
