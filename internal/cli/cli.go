package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/piwi3910/ScatterBoard/internal/project"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and the fyne app ID.
	appName = "scatterboard"

	// defaultRuns is the number of layouts check and compare run per scenario.
	defaultRuns = 20
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath   string
	fixturesPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ScatterBoard scatters widgets over fixture pages for UI automation tests",
		Long: `ScatterBoard lays buttons and inputs out at random, non-overlapping positions
on a canvas, falling back to a deterministic grid when a widget cannot be placed
at random. Fixture pages built from these layouts exercise UI automation agents
that must find controls by what they look like rather than where they are.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "application config file")
	root.PersistentFlags().StringVar(&c.fixturesPath, "fixtures", project.DefaultFixturesPath(), "fixture store file")

	root.AddCommand(c.fixturesCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())

	return root
}

// =============================================================================
// Config & Fixtures
// =============================================================================

func (c *CLI) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(c.configPath)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *CLI) loadStore() (model.FixtureStore, error) {
	store, err := project.LoadAllFixtures(c.fixturesPath)
	if err != nil {
		return store, fmt.Errorf("load fixtures: %w", err)
	}
	return store, nil
}

// isFixtureFile reports whether arg names a fixture definition file rather
// than a fixture in the store.
func isFixtureFile(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml", ".toml", ".json":
		_, err := os.Stat(arg)
		return err == nil
	}
	return false
}

// resolveFixture loads arg as a fixture file when it is one, otherwise looks
// it up by name or ID in the store.
func (c *CLI) resolveFixture(arg string) (model.FixtureSpec, error) {
	if isFixtureFile(arg) {
		spec, err := project.LoadFixtureFile(arg)
		if err != nil {
			return model.FixtureSpec{}, err
		}
		c.Logger.Debug("loaded fixture file", "path", arg, "name", spec.Name)
		return spec, nil
	}

	store, err := c.loadStore()
	if err != nil {
		return model.FixtureSpec{}, err
	}
	return project.FindFixture(store, arg)
}

// =============================================================================
// Layout Settings Flags
// =============================================================================

// settingsFlags are the layout constants every layout-producing command
// accepts. Only flags given on the command line override the fixture.
type settingsFlags struct {
	seed        uint64
	attempts    int
	edgePadding float64
	clearance   float64
	columnGap   float64
	rowGap      float64
	strict      bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	d := model.DefaultSettings()
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 = new seed)")
	cmd.Flags().IntVar(&f.attempts, "attempts", d.MaxAttempts, "random attempts per widget")
	cmd.Flags().Float64Var(&f.edgePadding, "edge-padding", d.EdgePadding, "clearance to the canvas edges")
	cmd.Flags().Float64Var(&f.clearance, "clearance", d.Clearance, "minimum distance between widgets")
	cmd.Flags().Float64Var(&f.columnGap, "column-gap", d.ColumnGap, "grid fallback column spacing")
	cmd.Flags().Float64Var(&f.rowGap, "row-gap", d.RowGap, "grid fallback row spacing")
	cmd.Flags().BoolVar(&f.strict, "strict-fallback", d.StrictFallback, "grid fallback skips occupied slots")
}

// apply overrides s with every flag set on cmd.
func (f *settingsFlags) apply(cmd *cobra.Command, s *model.LayoutSettings) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		s.Seed = f.seed
	}
	if flags.Changed("attempts") {
		s.MaxAttempts = f.attempts
	}
	if flags.Changed("edge-padding") {
		s.EdgePadding = f.edgePadding
	}
	if flags.Changed("clearance") {
		s.Clearance = f.clearance
	}
	if flags.Changed("column-gap") {
		s.ColumnGap = f.columnGap
	}
	if flags.Changed("row-gap") {
		s.RowGap = f.rowGap
	}
	if flags.Changed("strict-fallback") {
		s.StrictFallback = f.strict
	}
}

// fixtureWithFlags resolves the fixture and applies the settings flags,
// re-validating the result.
func (c *CLI) fixtureWithFlags(cmd *cobra.Command, arg string, flags *settingsFlags) (model.FixtureSpec, error) {
	spec, err := c.resolveFixture(arg)
	if err != nil {
		return model.FixtureSpec{}, err
	}
	flags.apply(cmd, &spec.Settings)
	if err := project.ValidateFixture(spec); err != nil {
		return model.FixtureSpec{}, fmt.Errorf("invalid settings: %w", err)
	}
	return spec, nil
}
