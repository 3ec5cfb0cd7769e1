package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

// ErrFixtureNotFound is returned when a fixture name matches neither the
// store nor the builtin fixtures.
var ErrFixtureNotFound = errors.New("fixture not found")

// DefaultFixturesPath returns the default file path for the fixture store,
// ~/.scatterboard/fixtures.json.
func DefaultFixturesPath() string {
	return filepath.Join(DefaultConfigDir(), "fixtures.json")
}

// SaveFixtures writes the fixture store to a JSON file.
func SaveFixtures(path string, store model.FixtureStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create fixtures directory: %w", err)
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixtures: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFixtures reads a fixture store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadFixtures(path string) (model.FixtureStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewFixtureStore(), nil
		}
		return model.FixtureStore{}, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	var store model.FixtureStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.FixtureStore{}, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	if store.Fixtures == nil {
		store.Fixtures = []model.FixtureSpec{}
	}
	return store, nil
}

// LoadAllFixtures returns the builtin fixtures merged with the store at path.
// Stored fixtures replace builtins of the same name.
func LoadAllFixtures(path string) (model.FixtureStore, error) {
	all := model.NewBuiltinFixtureStore()
	stored, err := LoadFixtures(path)
	if err != nil {
		return all, err
	}
	for _, f := range stored.Fixtures {
		all.Add(f)
	}
	return all, nil
}

// FindFixture looks a fixture up by name, then by ID.
func FindFixture(store model.FixtureStore, name string) (model.FixtureSpec, error) {
	if f := store.FindByName(name); f != nil {
		return *f, nil
	}
	if f := store.FindByID(name); f != nil {
		return *f, nil
	}
	return model.FixtureSpec{}, fmt.Errorf("%w: %s", ErrFixtureNotFound, name)
}
