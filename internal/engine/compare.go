package engine

import (
	"fmt"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LayoutSettings
}

// ComparisonResult holds aggregate statistics over several layout runs of
// one scenario.
type ComparisonResult struct {
	Scenario           ComparisonScenario
	Runs               int
	AvgAttempts        float64
	AvgFallbacks       float64
	AvgCoverage        float64
	RunsWithFallback   int
	RunsWithCollisions int
	MaxCollisions      int
}

// CompareScenarios lays out the same fixture repeatedly under each scenario.
// Scenarios with a fixed seed use seed, seed+1, ... so comparisons are
// reproducible; scenarios without one use fresh seeds.
func CompareScenarios(scenarios []ComparisonScenario, spec model.FixtureSpec, runs int) []ComparisonResult {
	if runs < 1 {
		runs = 1
	}
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cr := ComparisonResult{Scenario: scenario, Runs: runs}

		for i := 0; i < runs; i++ {
			settings := scenario.Settings
			if settings.Seed != 0 {
				settings.Seed += uint64(i)
			}
			result := New(settings).LayoutFixture(spec)

			cr.AvgAttempts += float64(result.Attempts)
			cr.AvgFallbacks += float64(result.Fallbacks)
			cr.AvgCoverage += result.Coverage()
			if result.Fallbacks > 0 {
				cr.RunsWithFallback++
			}
			n := len(CheckCollisions(result, settings.Clearance))
			if n > 0 {
				cr.RunsWithCollisions++
			}
			if n > cr.MaxCollisions {
				cr.MaxCollisions = n
			}
		}

		cr.AvgAttempts /= float64(runs)
		cr.AvgFallbacks /= float64(runs)
		cr.AvgCoverage /= float64(runs)
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.LayoutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: smaller and larger random search budgets
	for _, attempts := range []int{10, 1000} {
		if attempts == baseSettings.Attempts() {
			continue
		}
		s := baseSettings
		s.MaxAttempts = attempts
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%d Attempts", attempts),
			Settings: s,
		})
	}

	// Scenario: toggle strict fallback
	strict := baseSettings
	strict.StrictFallback = !baseSettings.StrictFallback
	name := "Strict Fallback"
	if baseSettings.StrictFallback {
		name = "Plain Fallback"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: strict,
	})

	// Scenario: no clearance between widgets
	if baseSettings.Clearance > 0 {
		noClear := baseSettings
		noClear.Clearance = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Clearance",
			Settings: noClear,
		})
	}

	return scenarios
}
