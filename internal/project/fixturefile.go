package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/ScatterBoard/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for fixture files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// LoadFixtureFile reads a fixture definition from a YAML, TOML or JSON file,
// chosen by extension. Fields the file leaves out keep the NewFixtureSpec
// defaults; the name defaults to the file name without extension.
func LoadFixtureFile(path string) (model.FixtureSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FixtureSpec{}, fmt.Errorf("read fixture %s: %w", path, err)
	}

	base := filepath.Base(path)
	spec := model.NewFixtureSpec(strings.TrimSuffix(base, filepath.Ext(base)), "")

	if err := unmarshalFixture(path, data, &spec); err != nil {
		return model.FixtureSpec{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	if err := ValidateFixture(spec); err != nil {
		return model.FixtureSpec{}, fmt.Errorf("invalid fixture %s: %w", path, err)
	}
	return spec, nil
}

func unmarshalFixture(path string, data []byte, spec *model.FixtureSpec) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, spec)
	case ".toml":
		return toml.Unmarshal(data, spec)
	case ".json":
		return json.Unmarshal(data, spec)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// SaveFixtureFile writes a fixture definition in the format named by the
// file extension.
func SaveFixtureFile(path string, spec model.FixtureSpec) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(spec)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(spec)
		data = buf.Bytes()
	case ".json":
		data, err = json.MarshalIndent(spec, "", "  ")
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode fixture %s: %w", spec.Name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create fixture directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ValidateFixture checks that a fixture can be laid out. All problems are
// reported together.
func ValidateFixture(spec model.FixtureSpec) error {
	var errs []error

	if strings.TrimSpace(spec.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if spec.Viewport.Width <= 0 || spec.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %gx%g", spec.Viewport.Width, spec.Viewport.Height))
	}
	if spec.Viewport.HeaderHeight < 0 || spec.Viewport.FooterHeight < 0 {
		errs = append(errs, errors.New("header and footer heights must not be negative"))
	}
	errs = append(errs, validateGroup("buttons", spec.Buttons)...)
	errs = append(errs, validateGroup("inputs", spec.Inputs)...)
	if spec.Inputs.Count > 0 && spec.Clear.Enabled && (spec.Clear.Width <= 0 || spec.Clear.Height <= 0) {
		errs = append(errs, errors.New("clear control size must be positive"))
	}
	for i, o := range spec.Obstacles {
		if o.Width < 0 || o.Height < 0 {
			errs = append(errs, fmt.Errorf("obstacle %d has negative size", i+1))
		}
	}

	s := spec.Settings
	if s.EdgePadding < 0 || s.Clearance < 0 || s.ColumnGap < 0 || s.RowGap < 0 {
		errs = append(errs, errors.New("settings: padding, clearance and gaps must not be negative"))
	}
	if s.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("settings: max_attempts must not be negative, got %d", s.MaxAttempts))
	}

	return errors.Join(errs...)
}

func validateGroup(name string, g model.WidgetGroup) []error {
	if g.Count < 0 {
		return []error{fmt.Errorf("%s: count must not be negative", name)}
	}
	if g.Count > 0 && (g.Width <= 0 || g.Height <= 0) {
		return []error{fmt.Errorf("%s: size must be positive, got %gx%g", name, g.Width, g.Height)}
	}
	return nil
}
