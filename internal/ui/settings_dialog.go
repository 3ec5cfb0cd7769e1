package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ScatterBoard/internal/project"
)

// floatEntry creates an entry bound to a float64.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf("%.1f", *val))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

// intEntry creates an entry bound to an int.
func intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(*val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			*val = v
		}
	}
	return e
}

// seedEntry creates an entry bound to a seed; empty or 0 means random.
func seedEntry(val *uint64) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder("0 = new seed every layout")
	if *val != 0 {
		e.SetText(strconv.FormatUint(*val, 10))
	}
	e.OnChanged = func(text string) {
		if text == "" {
			*val = 0
			return
		}
		if v, err := strconv.ParseUint(text, 10, 64); err == nil {
			*val = v
		}
	}
	return e
}

// showSettingsDialog edits the layout constants used by the preview. Apply
// lays the fixture out again with the edited values.
func (a *App) showSettingsDialog() {
	s := a.settings

	strictCheck := widget.NewCheck("", func(b bool) { s.StrictFallback = b })
	strictCheck.Checked = s.StrictFallback

	searchSection := widget.NewCard("Random Search",
		"Each widget is tried at up to this many random positions",
		container.NewGridWithColumns(2,
			widget.NewLabel("Max Attempts"), intEntry(&s.MaxAttempts),
			widget.NewLabel("Seed"), seedEntry(&s.Seed),
		))

	spacingSection := widget.NewCard("Spacing", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Edge Padding"), floatEntry(&s.EdgePadding),
			widget.NewLabel("Clearance"), floatEntry(&s.Clearance),
		))

	fallbackSection := widget.NewCard("Grid Fallback",
		"Used once the attempt budget for a widget is spent",
		container.NewGridWithColumns(2,
			widget.NewLabel("Column Gap"), floatEntry(&s.ColumnGap),
			widget.NewLabel("Row Gap"), floatEntry(&s.RowGap),
			widget.NewLabel("Skip Occupied Slots"), strictCheck,
		))

	saveDefaults := widget.NewButton("Save as Defaults", func() {
		a.config.DefaultEdgePadding = s.EdgePadding
		a.config.DefaultClearance = s.Clearance
		a.config.DefaultColumnGap = s.ColumnGap
		a.config.DefaultRowGap = s.RowGap
		a.config.DefaultMaxAttempts = s.MaxAttempts
		a.config.StrictFallback = s.StrictFallback
		if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Saved layout defaults to " + a.configPath)
	})

	content := container.NewVScroll(container.NewVBox(
		searchSection,
		spacingSection,
		fallbackSection,
		saveDefaults,
	))

	d := dialog.NewCustomConfirm("Layout Settings", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if err := a.applySettings(s); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.Resize(fyne.NewSize(480, 520))
	d.Show()
}
