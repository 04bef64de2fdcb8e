package ratings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfairbrother/knocksim/pkg/sim"
)

func testArtifact() *Artifact {
	a := &Artifact{
		Ratings: map[string]float64{
			"Brazil":  2100,
			"France":  2050,
			"Iceland": 1700,
			"Malta":   1400,
		},
	}
	a.applyDefaults()
	return a
}

func TestPredictMatchOutcomeSumsToOne(t *testing.T) {
	a := testArtifact()

	probs, err := a.PredictMatchOutcome("Brazil", "Malta", false)
	require.NoError(t, err)

	total := probs[sim.KeyHomeWin] + probs[sim.KeyDraw] + probs[sim.KeyAwayWin]
	assert.InDelta(t, 1.0, total, 1e-9)
	for key, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0, key)
		assert.LessOrEqual(t, p, 1.0, key)
	}
}

func TestPredictMatchOutcomeFavoursStrongerSide(t *testing.T) {
	a := testArtifact()

	probs, err := a.PredictMatchOutcome("Brazil", "Malta", true)
	require.NoError(t, err)
	assert.Greater(t, probs[sim.KeyHomeWin], 0.9, "a 700-point gap should be near-certain")

	reversed, err := a.PredictMatchOutcome("Malta", "Brazil", true)
	require.NoError(t, err)
	assert.Greater(t, reversed[sim.KeyAwayWin], 0.9)
}

func TestPredictMatchOutcomeNeutralSuppressesHomeAdvantage(t *testing.T) {
	a := testArtifact()
	a.Ratings["Mirror"] = a.Ratings["Brazil"]

	home, err := a.PredictMatchOutcome("Brazil", "Mirror", false)
	require.NoError(t, err)
	assert.Greater(t, home[sim.KeyHomeWin], home[sim.KeyAwayWin],
		"home ground should tip an otherwise even fixture")

	neutral, err := a.PredictMatchOutcome("Brazil", "Mirror", true)
	require.NoError(t, err)
	assert.InDelta(t, neutral[sim.KeyHomeWin], neutral[sim.KeyAwayWin], 1e-9,
		"equal ratings on neutral ground should be symmetric")
}

func TestPredictMatchOutcomeUnknownTeamGetsDefaultRating(t *testing.T) {
	a := testArtifact()
	a.Ratings["Average"] = a.DefaultRating

	known, err := a.PredictMatchOutcome("Average", "Brazil", true)
	require.NoError(t, err)
	unknown, err := a.PredictMatchOutcome("Nowhere United", "Brazil", true)
	require.NoError(t, err)

	assert.InDelta(t, known[sim.KeyHomeWin], unknown[sim.KeyHomeWin], 1e-9)
}

func TestWinExpectancy(t *testing.T) {
	assert.InDelta(t, 0.5, winExpectancy(1500, 1500), 1e-9)
	assert.InDelta(t, 1.0, winExpectancy(3000, 1000), 0.01)
	assert.InDelta(t, winExpectancy(1600, 1400), 1.0-winExpectancy(1400, 1600), 1e-9)
}

func TestArtifactTeamsSorted(t *testing.T) {
	a := testArtifact()
	assert.Equal(t, []string{"Brazil", "France", "Iceland", "Malta"}, a.Teams())
}

func TestLoadArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratings.json")
	data := `{"name":"euro-2024","ratings":{"France":2050,"Malta":1400},"drawFactor":0.3}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	a, err := LoadArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, "euro-2024", a.Name)
	assert.Equal(t, 0.3, a.DrawFactor)
	// omitted fields fall back to the configured defaults
	assert.Equal(t, sim.Config.DefaultHomeAdvantage, a.HomeAdvantage)
	assert.Equal(t, sim.Config.DefaultRating, a.DefaultRating)
}

func TestLoadArtifactRejectsBrokenFiles(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "nope.json")
	_, err := LoadArtifact(missing)
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0644))
	_, err = LoadArtifact(garbage)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"ratings":{}}`), 0644))
	_, err = LoadArtifact(empty)
	assert.Error(t, err, "an artifact without ratings is useless")
}

func TestValidateRejectsBadDrawFactor(t *testing.T) {
	a := testArtifact()
	a.DrawFactor = 1.5
	assert.Error(t, a.Validate())

	a.DrawFactor = -0.1
	assert.Error(t, a.Validate())

	a.DrawFactor = 0.4
	assert.NoError(t, a.Validate())
}
