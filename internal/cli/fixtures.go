package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// fixturesCommand lists the fixtures available to the other commands.
func (c *CLI) fixturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List builtin and stored fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFixtures()
		},
	}
}

func (c *CLI) runFixtures() error {
	store, err := c.loadStore()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render("Fixtures"))
	rows := [][]string{{"NAME", "ID", "VIEWPORT", "BUTTONS", "INPUTS", "EXTRA", "DESCRIPTION"}}
	for _, f := range store.Fixtures {
		rows = append(rows, []string{
			f.Name,
			f.ID,
			fmt.Sprintf("%.0fx%.0f", f.Viewport.Width, f.Viewport.Height),
			strconv.Itoa(f.Buttons.Count),
			strconv.Itoa(f.Inputs.Count),
			strconv.Itoa(len(f.Extra)),
			f.Description,
		})
	}
	printTable(rows)
	return nil
}
