// Package engine scatters widget rectangles over a canvas without collisions.
//
// Each rectangle is tried at up to MaxAttempts uniformly random positions and
// the first valid one wins. When every attempt fails the rectangle goes into
// the next slot of a deterministic grid, so every request is always placed.
// Requests are processed in input order: earlier requests claim space first.
package engine

import (
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// Engine runs layouts with a fixed set of settings. It holds no mutable
// state and may be shared between goroutines.
type Engine struct {
	Settings model.LayoutSettings
}

func New(settings model.LayoutSettings) *Engine {
	return &Engine{Settings: settings}
}

// NewPlacer returns an empty accumulator using the engine settings.
func (e *Engine) NewPlacer(bounds model.Bounds, rng Source) *Placer {
	return NewPlacer(bounds, e.Settings, rng)
}

// Layout places every request, in order, inside bounds.
func (e *Engine) Layout(requests []model.PlacementRequest, bounds model.Bounds) model.LayoutResult {
	return e.LayoutBatches(bounds, nil, requests)
}

// LayoutBatches lays out the batches one after another against a single
// accumulator. Obstacles are reserved before the first batch.
func (e *Engine) LayoutBatches(bounds model.Bounds, obstacles []model.Rect, batches ...[]model.PlacementRequest) model.LayoutResult {
	seed := e.Settings.Seed
	if seed == 0 {
		seed = newSeed()
	}
	return e.run(bounds, obstacles, batches, newSource(seed), seed)
}

// LayoutWithSource is LayoutBatches with a caller-supplied random source.
// The result carries seed 0 because the source is opaque.
func (e *Engine) LayoutWithSource(bounds model.Bounds, obstacles []model.Rect, rng Source, batches ...[]model.PlacementRequest) model.LayoutResult {
	return e.run(bounds, obstacles, batches, rng, 0)
}

// LayoutFixture lays out a fixture's batches inside its viewport using the
// engine settings. Callers that want the fixture's own settings construct
// the engine with New(spec.Settings).
func (e *Engine) LayoutFixture(spec model.FixtureSpec) model.LayoutResult {
	fixtureBatches := spec.Batches()
	batches := make([][]model.PlacementRequest, len(fixtureBatches))
	for i, b := range fixtureBatches {
		batches[i] = b.Requests
	}
	return e.LayoutBatches(spec.Viewport.Bounds(), spec.Obstacles, batches...)
}

func (e *Engine) run(bounds model.Bounds, obstacles []model.Rect, batches [][]model.PlacementRequest, rng Source, seed uint64) model.LayoutResult {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	placer := NewPlacer(bounds, e.Settings, rng)
	placer.Reserve(obstacles...)

	result := model.LayoutResult{
		Bounds:   bounds,
		Settings: e.Settings,
		Seed:     seed,
		Widgets:  make([]model.PlacedWidget, 0, total),
	}
	if len(obstacles) > 0 {
		result.Obstacles = append([]model.Rect(nil), obstacles...)
	}

	for _, batch := range batches {
		for _, req := range batch {
			result.Widgets = append(result.Widgets, placer.PlaceRequest(req))
		}
	}

	result.Attempts = placer.Attempts()
	result.Fallbacks = placer.Fallbacks()
	return result
}
