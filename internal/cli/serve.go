package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/piwi3910/ScatterBoard/internal/server"
)

// serveCommand serves the fixture pages until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fixture pages with click tracking",
		Long: `Serve fixture pages with click tracking.

Each load of /fixtures/<name> lays the fixture out afresh. Clicks on the page
are hit-tested against that layout and can be read back from
/api/fixtures/<name>/clicks. Settings flags given here override every fixture.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd, addr, &flags)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cmd *cobra.Command, addr string, flags *settingsFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := c.loadStore()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.ListenAddr
	}

	var opts []server.Option
	if anySettingsFlag(cmd) {
		settings := model.DefaultSettings()
		cfg.ApplyToSettings(&settings)
		flags.apply(cmd, &settings)
		opts = append(opts, server.WithSettings(settings))
	}

	printInfo("Serving %d fixtures on %s", len(store.Fixtures), StyleLink.Render(fmt.Sprintf("http://%s/", addr)))
	return server.New(store, c.Logger, opts...).ListenAndServe(ctx, addr)
}

// anySettingsFlag reports whether a layout settings flag was given.
func anySettingsFlag(cmd *cobra.Command) bool {
	for _, name := range []string{"seed", "attempts", "edge-padding", "clearance", "column-gap", "row-gap", "strict-fallback"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
