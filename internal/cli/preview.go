package cli

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/ui"
)

// previewCommand opens the desktop preview window.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [fixture]",
		Short: "Open the desktop preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := ""
			if len(args) == 1 {
				initial = args[0]
			}
			return c.runPreview(initial)
		},
	}
}

func (c *CLI) runPreview(initial string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := c.loadStore()
	if err != nil {
		return err
	}

	if initial != "" && isFixtureFile(initial) {
		spec, err := c.resolveFixture(initial)
		if err != nil {
			return err
		}
		store.Add(spec)
		initial = spec.Name
		cfg.AddRecentFixture(initial, 10)
	}

	application := app.NewWithID("com.piwi3910." + appName)
	window := application.NewWindow("ScatterBoard - Fixture Preview")

	appUI := ui.NewApp(application, window, ui.Options{
		Logger:       c.Logger,
		Config:       cfg,
		ConfigPath:   c.configPath,
		Fixtures:     store,
		FixturesPath: c.fixturesPath,
		Initial:      initial,
	})
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(cfg.PreviewWidth, cfg.PreviewHeight))
	window.CenterOnScreen()
	window.ShowAndRun()

	return appUI.SaveConfig()
}
