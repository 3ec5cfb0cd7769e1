package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// WidgetGroup describes a homogeneous set of widgets on a fixture page.
type WidgetGroup struct {
	Count       int      `json:"count" yaml:"count" toml:"count"`
	Width       float64  `json:"width" yaml:"width" toml:"width"`
	Height      float64  `json:"height" yaml:"height" toml:"height"`
	LabelPrefix string   `json:"label_prefix" yaml:"label_prefix" toml:"label_prefix"`
	Colors      []string `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"`
}

// ClearControl configures the clear button reserved next to every input.
type ClearControl struct {
	Enabled bool    `json:"enabled" yaml:"enabled" toml:"enabled"`
	Width   float64 `json:"width" yaml:"width" toml:"width"`
	Height  float64 `json:"height" yaml:"height" toml:"height"`
	Gap     float64 `json:"gap" yaml:"gap" toml:"gap"`
}

// FixtureSpec is a reusable fixture page definition. It holds what to place,
// never where: layouts are recomputed on every load.
type FixtureSpec struct {
	ID          string             `json:"id" yaml:"id" toml:"id"`
	Name        string             `json:"name" yaml:"name" toml:"name"`
	Description string             `json:"description" yaml:"description" toml:"description"`
	CreatedAt   string             `json:"created_at" yaml:"created_at,omitempty" toml:"created_at,omitempty"`
	UpdatedAt   string             `json:"updated_at" yaml:"updated_at,omitempty" toml:"updated_at,omitempty"`
	Viewport    Viewport           `json:"viewport" yaml:"viewport" toml:"viewport"`
	Buttons     WidgetGroup        `json:"buttons" yaml:"buttons" toml:"buttons"`
	Inputs      WidgetGroup        `json:"inputs" yaml:"inputs" toml:"inputs"`
	Clear       ClearControl       `json:"clear" yaml:"clear" toml:"clear"`
	Obstacles   []Rect             `json:"obstacles,omitempty" yaml:"obstacles,omitempty" toml:"obstacles,omitempty"`
	Extra       []PlacementRequest `json:"extra,omitempty" yaml:"extra,omitempty" toml:"extra,omitempty"` // Imported requests, laid out last
	Settings    LayoutSettings     `json:"settings" yaml:"settings" toml:"settings"`
}

// defaultColors mirrors the palette used by the canvas page and the exports.
var defaultColors = []string{
	"#4caf50", // green
	"#2196f3", // blue
	"#ff9800", // orange
	"#9c27b0", // purple
	"#00bcd4", // cyan
	"#f44336", // red
	"#ffeb3b", // yellow
	"#795548", // brown
}

// DefaultColors returns a copy of the default widget palette.
func DefaultColors() []string {
	cp := make([]string, len(defaultColors))
	copy(cp, defaultColors)
	return cp
}

// NewFixtureSpec creates a fixture with a fresh ID and default sizes.
func NewFixtureSpec(name, description string) FixtureSpec {
	now := time.Now().UTC().Format(time.RFC3339)
	return FixtureSpec{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Viewport:    Viewport{Width: 1280, Height: 720, HeaderHeight: 60, FooterHeight: 0},
		Buttons:     WidgetGroup{Count: 8, Width: 140, Height: 40, LabelPrefix: "Button"},
		Inputs:      WidgetGroup{Count: 0, Width: 200, Height: 32, LabelPrefix: "Input"},
		Clear:       ClearControl{Enabled: true, Width: 32, Height: 32, Gap: 10},
		Settings:    DefaultSettings(),
	}
}

// Batch is an ordered group of requests laid out after the previous batches.
type Batch struct {
	Name     string             `json:"name"`
	Requests []PlacementRequest `json:"requests"`
}

// Batches expands the fixture into ordered request batches: buttons first,
// then inputs (each with its clear control when enabled), then extra requests.
func (f FixtureSpec) Batches() []Batch {
	var batches []Batch

	if f.Buttons.Count > 0 {
		b := Batch{Name: "buttons"}
		for i := 0; i < f.Buttons.Count; i++ {
			req := NewRequest(KindButton, groupLabel(f.Buttons, "Button", i), f.Buttons.Width, f.Buttons.Height)
			req.Color = groupColor(f.Buttons, i)
			req.Payload = map[string]string{"group": "buttons", "index": strconv.Itoa(i)}
			b.Requests = append(b.Requests, req)
		}
		batches = append(batches, b)
	}

	if f.Inputs.Count > 0 {
		b := Batch{Name: "inputs"}
		for i := 0; i < f.Inputs.Count; i++ {
			req := NewRequest(KindInput, groupLabel(f.Inputs, "Input", i), f.Inputs.Width, f.Inputs.Height)
			req.Color = groupColor(f.Inputs, i)
			req.Payload = map[string]string{"group": "inputs", "index": strconv.Itoa(i)}
			if f.Clear.Enabled {
				req.Companion = &CompanionRequest{
					Kind:   KindClear,
					Label:  "Clear",
					Width:  f.Clear.Width,
					Height: f.Clear.Height,
					Gap:    f.Clear.Gap,
				}
			}
			b.Requests = append(b.Requests, req)
		}
		batches = append(batches, b)
	}

	if len(f.Extra) > 0 {
		extra := make([]PlacementRequest, len(f.Extra))
		copy(extra, f.Extra)
		batches = append(batches, Batch{Name: "extra", Requests: extra})
	}

	return batches
}

// RequestCount returns the number of requests Batches will produce.
func (f FixtureSpec) RequestCount() int {
	n := len(f.Extra)
	if f.Buttons.Count > 0 {
		n += f.Buttons.Count
	}
	if f.Inputs.Count > 0 {
		n += f.Inputs.Count
	}
	return n
}

// Copy returns an independent copy of the fixture with a fresh ID and name.
func (f FixtureSpec) Copy(name string) FixtureSpec {
	now := time.Now().UTC().Format(time.RFC3339)
	cp := f
	cp.ID = uuid.New().String()[:8]
	cp.Name = name
	cp.CreatedAt = now
	cp.UpdatedAt = now
	cp.Buttons.Colors = append([]string(nil), f.Buttons.Colors...)
	cp.Inputs.Colors = append([]string(nil), f.Inputs.Colors...)
	cp.Obstacles = append([]Rect(nil), f.Obstacles...)
	cp.Extra = append([]PlacementRequest(nil), f.Extra...)
	return cp
}

func groupLabel(g WidgetGroup, fallback string, i int) string {
	prefix := g.LabelPrefix
	if prefix == "" {
		prefix = fallback
	}
	return fmt.Sprintf("%s %d", prefix, i+1)
}

func groupColor(g WidgetGroup, i int) string {
	colors := g.Colors
	if len(colors) == 0 {
		colors = defaultColors
	}
	return colors[i%len(colors)]
}

// BuiltinFixtures returns the fixtures shipped with the application.
func BuiltinFixtures() []FixtureSpec {
	canvas := NewFixtureSpec("canvas-buttons", "Ten buttons scattered over a canvas click tracker")
	canvas.ID = "builtin1"
	canvas.Buttons.Count = 10

	mixed := NewFixtureSpec("buttons-and-inputs", "Buttons and text inputs with clear controls")
	mixed.ID = "builtin2"
	mixed.Buttons.Count = 6
	mixed.Inputs.Count = 4

	dense := NewFixtureSpec("dense-grid", "More buttons than random search can fit; exercises the grid fallback")
	dense.ID = "builtin3"
	dense.Viewport = Viewport{Width: 800, Height: 600}
	dense.Buttons = WidgetGroup{Count: 40, Width: 150, Height: 40, LabelPrefix: "Cell"}
	dense.Settings.MaxAttempts = 20

	return []FixtureSpec{canvas, mixed, dense}
}

// FixtureStore holds a collection of fixture definitions.
type FixtureStore struct {
	Fixtures []FixtureSpec `json:"fixtures"`
}

// NewFixtureStore creates an empty fixture store.
func NewFixtureStore() FixtureStore {
	return FixtureStore{
		Fixtures: []FixtureSpec{},
	}
}

// NewBuiltinFixtureStore creates a store pre-filled with the builtin fixtures.
func NewBuiltinFixtureStore() FixtureStore {
	return FixtureStore{Fixtures: BuiltinFixtures()}
}

// Add adds a fixture to the store, replacing any fixture with the same name.
func (fs *FixtureStore) Add(f FixtureSpec) {
	for i := range fs.Fixtures {
		if fs.Fixtures[i].Name == f.Name {
			fs.Fixtures[i] = f
			return
		}
	}
	fs.Fixtures = append(fs.Fixtures, f)
}

// Remove removes a fixture by ID. Returns true if found and removed.
func (fs *FixtureStore) Remove(id string) bool {
	for i, f := range fs.Fixtures {
		if f.ID == id {
			fs.Fixtures = append(fs.Fixtures[:i], fs.Fixtures[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the fixture with the given ID, or nil.
func (fs *FixtureStore) FindByID(id string) *FixtureSpec {
	for i := range fs.Fixtures {
		if fs.Fixtures[i].ID == id {
			return &fs.Fixtures[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first fixture with the given name, or nil.
func (fs *FixtureStore) FindByName(name string) *FixtureSpec {
	for i := range fs.Fixtures {
		if fs.Fixtures[i].Name == name {
			return &fs.Fixtures[i]
		}
	}
	return nil
}

// Names returns the fixture names in store order.
func (fs *FixtureStore) Names() []string {
	names := make([]string, len(fs.Fixtures))
	for i, f := range fs.Fixtures {
		names[i] = f.Name
	}
	return names
}
