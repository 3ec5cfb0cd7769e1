package project

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

func TestSaveAndLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")

	store := model.NewFixtureStore()
	f := model.NewFixtureSpec("search-page", "Search box and buttons")
	f.Inputs.Count = 1
	f.Obstacles = []model.Rect{{X: 0, Y: 60, Width: 200, Height: 660}}
	store.Add(f)

	if err := SaveFixtures(path, store); err != nil {
		t.Fatalf("SaveFixtures failed: %v", err)
	}

	loaded, err := LoadFixtures(path)
	if err != nil {
		t.Fatalf("LoadFixtures failed: %v", err)
	}
	if len(loaded.Fixtures) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(loaded.Fixtures))
	}
	got := loaded.Fixtures[0]
	if got.ID != f.ID || got.Name != "search-page" {
		t.Errorf("unexpected fixture identity: %s %s", got.ID, got.Name)
	}
	if len(got.Obstacles) != 1 || got.Obstacles[0].Width != 200 {
		t.Errorf("obstacles not preserved: %+v", got.Obstacles)
	}
}

func TestLoadFixturesMissingFile(t *testing.T) {
	store, err := LoadFixtures(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Fixtures == nil || len(store.Fixtures) != 0 {
		t.Errorf("expected empty non-nil store, got %+v", store.Fixtures)
	}
}

func TestLoadAllFixturesOverridesBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")

	store := model.NewFixtureStore()
	custom := model.NewFixtureSpec("canvas-buttons", "Custom")
	custom.Buttons.Count = 3
	store.Add(custom)
	if err := SaveFixtures(path, store); err != nil {
		t.Fatal(err)
	}

	all, err := LoadAllFixtures(path)
	if err != nil {
		t.Fatalf("LoadAllFixtures failed: %v", err)
	}
	if len(all.Fixtures) != len(model.BuiltinFixtures()) {
		t.Errorf("expected %d fixtures, got %d", len(model.BuiltinFixtures()), len(all.Fixtures))
	}
	f, err := FindFixture(all, "canvas-buttons")
	if err != nil {
		t.Fatalf("FindFixture failed: %v", err)
	}
	if f.Buttons.Count != 3 {
		t.Errorf("expected stored fixture to win, got %d buttons", f.Buttons.Count)
	}
}

func TestFindFixture(t *testing.T) {
	store := model.NewBuiltinFixtureStore()

	if _, err := FindFixture(store, "builtin3"); err != nil {
		t.Errorf("expected lookup by ID to work: %v", err)
	}

	_, err := FindFixture(store, "no-such-fixture")
	if !errors.Is(err, ErrFixtureNotFound) {
		t.Errorf("expected ErrFixtureNotFound, got %v", err)
	}
}
