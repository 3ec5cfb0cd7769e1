// Package cli implements the scatterboard command-line interface.
//
// # Commands
//
//   - fixtures: List the builtin and stored fixtures
//   - layout: Lay a fixture out and print or save the layout JSON
//   - export: Write a layout as PDF, labels, DXF, Excel or JSON
//   - check: Lay a fixture out repeatedly and report collisions
//   - compare: Compare attempt budgets and fallback modes
//   - import: Add widgets (CSV/Excel) or obstacles (DXF) to a fixture
//   - serve: Serve fixture pages with click tracking
//   - preview: Open the desktop preview
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
