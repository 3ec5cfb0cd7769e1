package engine

import (
	"testing"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()
	scenarios := BuildDefaultScenarios(base)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Current Settings", "10 Attempts", "1000 Attempts", "Strict Fallback", "No Clearance"}, names)
	assert.True(t, scenarios[3].Settings.StrictFallback)
	assert.Equal(t, 0.0, scenarios[4].Settings.Clearance)
}

func TestBuildDefaultScenarios_SkipsDuplicates(t *testing.T) {
	base := model.DefaultSettings()
	base.MaxAttempts = 10
	base.StrictFallback = true
	base.Clearance = 0

	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, 3)
	assert.Equal(t, "1000 Attempts", scenarios[1].Name)
	assert.Equal(t, "Plain Fallback", scenarios[2].Name)
}

func TestCompareScenarios(t *testing.T) {
	spec := model.NewFixtureSpec("cmp", "")
	spec.Buttons.Count = 6

	base := model.DefaultSettings()
	base.Seed = 100
	results := CompareScenarios(BuildDefaultScenarios(base), spec, 4)

	require.Len(t, results, 5)
	for _, r := range results {
		assert.Equal(t, 4, r.Runs)
		assert.GreaterOrEqual(t, r.AvgAttempts, 6.0, "every widget draws at least one candidate")
		assert.Positive(t, r.AvgCoverage)
	}
}

func TestCompareScenarios_DenseFallsBack(t *testing.T) {
	spec := model.NewFixtureSpec("dense", "")
	spec.Viewport = model.Viewport{Width: 400, Height: 300}
	spec.Buttons.Count = 40

	s := model.DefaultSettings()
	s.Seed = 1
	s.MaxAttempts = 5
	results := CompareScenarios([]ComparisonScenario{{Name: "tight", Settings: s}}, spec, 0)

	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Runs)
	assert.Equal(t, 1, results[0].RunsWithFallback)
	assert.Positive(t, results[0].AvgFallbacks)
}
