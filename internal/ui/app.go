package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/export"
	"github.com/piwi3910/ScatterBoard/internal/importer"
	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/piwi3910/ScatterBoard/internal/project"
	"github.com/piwi3910/ScatterBoard/internal/ui/widgets"
)

// Options configures the preview application.
type Options struct {
	Logger       *log.Logger
	Config       model.AppConfig
	ConfigPath   string
	Fixtures     model.FixtureStore
	FixturesPath string
	Initial      string // Fixture shown first; empty picks the first in the store
}

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *log.Logger

	config       model.AppConfig
	configPath   string
	fixtures     model.FixtureStore
	fixturesPath string

	fixture  string // Name of the fixture on screen
	settings model.LayoutSettings
	result   *model.LayoutResult
	history  *History

	tabs             *container.AppTabs
	fixtureSelect    *widget.Select
	fixturesList     *fyne.Container
	previewContainer *fyne.Container
	canvas           *widgets.LayoutCanvas
	statusLabel      *widget.Label
}

func NewApp(application fyne.App, window fyne.Window, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = project.DefaultConfigPath()
	}
	fixturesPath := opts.FixturesPath
	if fixturesPath == "" {
		fixturesPath = project.DefaultFixturesPath()
	}

	a := &App{
		app:          application,
		window:       window,
		logger:       logger,
		config:       opts.Config,
		configPath:   configPath,
		fixtures:     opts.Fixtures,
		fixturesPath: fixturesPath,
		history:      NewHistory(),
		statusLabel:  widget.NewLabel("Ready"),
	}
	if application != nil {
		application.Settings().SetTheme(NewPreviewThemeFromConfig(opts.Config.Theme))
	}
	a.fixture = opts.Initial
	if a.fixture == "" && len(a.fixtures.Fixtures) > 0 {
		a.fixture = a.fixtures.Fixtures[0].Name
	}
	if spec := a.currentSpec(); spec != nil {
		a.settings = spec.Settings
	} else {
		a.settings = model.DefaultSettings()
		a.config.ApplyToSettings(&a.settings)
	}
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Fixture File...", func() {
			a.openFixtureFile()
		}),
		fyne.NewMenuItem("Save Fixture File...", func() {
			a.saveFixtureFile()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Widgets from CSV...", func() {
			a.importRequests(importer.ImportCSV)
		}),
		fyne.NewMenuItem("Import Widgets from Excel...", func() {
			a.importRequests(importer.ImportExcel)
		}),
		fyne.NewMenuItem("Import Obstacles from DXF...", func() {
			a.importObstacles()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() {
			a.exportResult("pdf", func(path string, r model.LayoutResult) error {
				return export.ExportPDF(path, a.fixture, r)
			})
		}),
		fyne.NewMenuItem("Export Labels...", func() {
			a.exportResult("labels.pdf", export.ExportLabels)
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportResult("dxf", export.ExportDXF)
		}),
		fyne.NewMenuItem("Export Excel...", func() {
			a.exportResult("xlsx", export.ExportExcel)
		}),
		fyne.NewMenuItem("Export JSON...", func() {
			a.exportResult("json", export.ExportJSON)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup All Data...", func() {
			a.backupData()
		}),
		fyne.NewMenuItem("Restore Backup...", func() {
			a.restoreData()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Previous Layout", func() { a.undo() }),
		fyne.NewMenuItem("Next Layout", func() { a.redo() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Layout Settings...", func() { a.showSettingsDialog() }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Reshuffle", func() {
			a.Reshuffle()
			a.tabs.SelectIndex(0)
		}),
		fyne.NewMenuItem("Check Layout", func() { a.showCheckDialog() }),
		fyne.NewMenuItem("Compare Settings...", func() { a.showCompareDialog() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation(
				"About ScatterBoard",
				"ScatterBoard - randomized fixture pages for UI automation\n\n"+
					"Scatters buttons and inputs over a canvas without overlaps,\n"+
					"falling back to a grid when the canvas is too crowded.",
				a.window,
			)
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	previewTab := container.NewTabItem("Preview", a.buildPreviewPanel())
	fixturesTab := container.NewTabItem("Fixtures", a.buildFixturesPanel())

	a.tabs = container.NewAppTabs(previewTab, fixturesTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	if a.currentSpec() != nil {
		a.Reshuffle()
	}
	return container.NewBorder(nil, a.statusLabel, nil, nil, a.tabs)
}

// ─── Preview Panel ─────────────────────────────────────────

func (a *App) buildPreviewPanel() fyne.CanvasObject {
	a.fixtureSelect = widget.NewSelect(a.fixtures.Names(), func(name string) {
		if name != a.fixture {
			a.ShowFixture(name)
		}
	})
	a.fixtureSelect.PlaceHolder = "Select a fixture..."
	if a.fixture != "" {
		a.fixtureSelect.Selected = a.fixture
	}

	toolbar := container.NewHBox(
		widget.NewLabelWithStyle("Fixture", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.fixtureSelect,
		newButtonWithTooltip("Reshuffle", theme.ViewRefreshIcon(), "Lay the fixture out again with a new seed", a.Reshuffle),
		newIconButtonWithTooltip(theme.NavigateBackIcon(), "Previous layout", a.undo),
		newIconButtonWithTooltip(theme.NavigateNextIcon(), "Next layout", a.redo),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.SettingsIcon(), "Layout settings", a.showSettingsDialog),
	)

	a.previewContainer = container.NewStack(
		widget.NewLabel("No layout yet. Pick a fixture, then click Reshuffle."),
	)
	return container.NewBorder(toolbar, nil, nil, nil, a.previewContainer)
}

func (a *App) refreshPreview() {
	if a.previewContainer == nil {
		return
	}
	content, lc := widgets.RenderLayoutResult(a.result, a.onCanvasTapped)
	a.canvas = lc
	a.previewContainer.RemoveAll()
	a.previewContainer.Add(content)
	a.previewContainer.Refresh()
}

func (a *App) onCanvasTapped(x, y float64, hit engine.Hit, ok bool) {
	if !ok {
		a.setStatus(fmt.Sprintf("(%.0f, %.0f): no widget", x, y))
		return
	}
	r := hit.Widget.Rect
	if hit.Part == engine.HitCompanion && hit.Widget.Companion != nil {
		r = *hit.Widget.Companion
	}
	source := "random"
	if hit.Widget.Fallback {
		source = "grid fallback"
	}
	a.setStatus(fmt.Sprintf("(%.0f, %.0f): %s [%s] at %.0f,%.0f %.0fx%.0f (%s)",
		x, y, hit.Widget.Request.Label, hit.Part, r.X, r.Y, r.Width, r.Height, source))
}

func (a *App) setStatus(msg string) {
	a.statusLabel.SetText(msg)
}

// ─── Layout Actions ────────────────────────────────────────

func (a *App) currentSpec() *model.FixtureSpec {
	if a.fixture == "" {
		return nil
	}
	return a.fixtures.FindByName(a.fixture)
}

// ShowFixture switches the preview to the named fixture and lays it out.
func (a *App) ShowFixture(name string) {
	spec := a.fixtures.FindByName(name)
	if spec == nil {
		a.setStatus("Unknown fixture: " + name)
		return
	}
	a.fixture = name
	a.settings = spec.Settings
	a.history.Clear()
	a.result = nil
	if a.fixtureSelect != nil && a.fixtureSelect.Selected != name {
		a.fixtureSelect.SetSelected(name)
	}
	a.Reshuffle()
}

// Reshuffle lays the current fixture out again. With a zero seed every call
// produces a new arrangement.
func (a *App) Reshuffle() {
	spec := a.currentSpec()
	if spec == nil {
		a.setStatus("Pick a fixture first.")
		return
	}
	if a.result != nil {
		a.history.Push(MakeSnapshot(a.fixture, *a.result, "Reshuffle"))
	}

	result := engine.New(a.settings).LayoutFixture(*spec)
	a.result = &result
	a.logger.Debug("preview layout",
		"fixture", a.fixture,
		"seed", result.Seed,
		"attempts", result.Attempts,
		"fallbacks", result.Fallbacks,
	)
	a.refreshPreview()
	a.setStatus(fmt.Sprintf("%s: seed %d, %d widgets, %d fallbacks",
		a.fixture, result.Seed, len(result.Widgets), result.Fallbacks))
}

// applySettings validates edited settings against the current fixture and
// lays it out again.
func (a *App) applySettings(s model.LayoutSettings) error {
	if spec := a.currentSpec(); spec != nil {
		check := *spec
		check.Settings = s
		if err := project.ValidateFixture(check); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
	}
	a.settings = s
	a.Reshuffle()
	return nil
}

func (a *App) snapshot() Snapshot {
	if a.result == nil {
		return Snapshot{Fixture: a.fixture}
	}
	return MakeSnapshot(a.fixture, *a.result, "current")
}

func (a *App) restore(s Snapshot) {
	a.fixture = s.Fixture
	result := s.Result
	a.result = &result
	a.refreshPreview()
	a.setStatus(fmt.Sprintf("%s: seed %d", s.Fixture, result.Seed))
}

func (a *App) undo() {
	if s, ok := a.history.Undo(a.snapshot()); ok {
		a.restore(s)
	}
}

func (a *App) redo() {
	if s, ok := a.history.Redo(a.snapshot()); ok {
		a.restore(s)
	}
}

func (a *App) showCheckDialog() {
	if a.result == nil {
		dialog.ShowInformation("No layout", "Lay out a fixture first.", a.window)
		return
	}
	collisions := engine.CheckCollisions(*a.result, a.result.Settings.Clearance)
	outside := engine.CheckContainment(*a.result)

	var lines []string
	if len(collisions) == 0 && len(outside) == 0 {
		lines = append(lines, "No collisions. Every widget lies inside the padded bounds.")
	}
	lines = append(lines, engine.FormatCollisionWarnings(collisions)...)
	for _, i := range outside {
		lines = append(lines, fmt.Sprintf("Widget %d (%s) lies outside the padded bounds",
			i+1, a.result.Widgets[i].Request.Label))
	}
	dialog.ShowInformation("Layout Check", strings.Join(lines, "\n"), a.window)
}

func (a *App) showCompareDialog() {
	spec := a.currentSpec()
	if spec == nil {
		dialog.ShowInformation("No fixture", "Pick a fixture first.", a.window)
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(a.settings), *spec, 20)

	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Avg Attempts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Avg Fallbacks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Runs w/ Fallback", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Runs w/ Collisions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, r := range results {
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f", r.AvgAttempts)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.2f", r.AvgFallbacks)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d / %d", r.RunsWithFallback, r.Runs)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d / %d", r.RunsWithCollisions, r.Runs)))
	}

	d := dialog.NewCustom("Compare Settings: "+spec.Name, "Close", container.NewVScroll(grid), a.window)
	d.Resize(fyne.NewSize(720, 320))
	d.Show()
}

// ─── Fixtures Panel ────────────────────────────────────────

func (a *App) buildFixturesPanel() fyne.CanvasObject {
	a.fixturesList = container.NewVBox()
	a.refreshFixturesList()

	addBtn := widget.NewButtonWithIcon("New Fixture", theme.ContentAddIcon(), func() {
		a.showFixtureDialog(nil)
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Fixtures", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.fixturesList),
	)
}

func (a *App) refreshFixturesList() {
	if a.fixtureSelect != nil {
		a.fixtureSelect.SetOptions(a.fixtures.Names())
	}
	if a.fixturesList == nil {
		return
	}
	a.fixturesList.RemoveAll()

	if len(a.fixtures.Fixtures) == 0 {
		a.fixturesList.Add(widget.NewLabel("No fixtures defined. Click 'New Fixture' to begin."))
		return
	}

	header := container.NewGridWithColumns(7,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Viewport", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Buttons", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Inputs", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.fixturesList.Add(header)
	a.fixturesList.Add(widget.NewSeparator())

	for i := range a.fixtures.Fixtures {
		f := a.fixtures.Fixtures[i]
		row := container.NewGridWithColumns(7,
			widget.NewLabel(f.Name),
			widget.NewLabel(fmt.Sprintf("%.0f x %.0f", f.Viewport.Width, f.Viewport.Height)),
			widget.NewLabel(strconv.Itoa(f.Buttons.Count)),
			widget.NewLabel(strconv.Itoa(f.Inputs.Count)),
			newIconButtonWithTooltip(theme.VisibilityIcon(), "Preview", func() {
				a.ShowFixture(f.Name)
				a.tabs.SelectIndex(0)
			}),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit", func() {
				a.showFixtureDialog(&f)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete", func() {
				a.deleteFixture(f.ID)
			}),
		)
		a.fixturesList.Add(row)
	}
}

// showFixtureDialog edits an existing fixture, or creates one when existing is nil.
func (a *App) showFixtureDialog(existing *model.FixtureSpec) {
	spec := model.NewFixtureSpec(fmt.Sprintf("fixture-%d", len(a.fixtures.Fixtures)+1), "")
	a.config.ApplyToSettings(&spec.Settings)
	title, confirm := "New Fixture", "Add"
	if existing != nil {
		spec = *existing
		title, confirm = "Edit Fixture", "Save"
	}
	oldName := spec.Name

	nameEntry := widget.NewEntry()
	nameEntry.SetText(spec.Name)
	descEntry := widget.NewEntry()
	descEntry.SetText(spec.Description)

	clearCheck := widget.NewCheck("", func(b bool) { spec.Clear.Enabled = b })
	clearCheck.Checked = spec.Clear.Enabled

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
			widget.NewFormItem("Viewport Width", floatEntry(&spec.Viewport.Width)),
			widget.NewFormItem("Viewport Height", floatEntry(&spec.Viewport.Height)),
			widget.NewFormItem("Header Height", floatEntry(&spec.Viewport.HeaderHeight)),
			widget.NewFormItem("Footer Height", floatEntry(&spec.Viewport.FooterHeight)),
			widget.NewFormItem("Buttons", intEntry(&spec.Buttons.Count)),
			widget.NewFormItem("Button Width", floatEntry(&spec.Buttons.Width)),
			widget.NewFormItem("Button Height", floatEntry(&spec.Buttons.Height)),
			widget.NewFormItem("Inputs", intEntry(&spec.Inputs.Count)),
			widget.NewFormItem("Input Width", floatEntry(&spec.Inputs.Width)),
			widget.NewFormItem("Input Height", floatEntry(&spec.Inputs.Height)),
			widget.NewFormItem("Clear Controls", clearCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			spec.Name = strings.TrimSpace(nameEntry.Text)
			spec.Description = descEntry.Text
			if err := a.saveFixture(spec, oldName); err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 560))
	form.Show()
}

// saveFixture validates spec, stores it and persists the fixture store.
// oldName is the name the fixture had before editing.
func (a *App) saveFixture(spec model.FixtureSpec, oldName string) error {
	if err := project.ValidateFixture(spec); err != nil {
		return err
	}
	if oldName != "" && oldName != spec.Name {
		if old := a.fixtures.FindByName(oldName); old != nil && old.ID == spec.ID {
			a.fixtures.Remove(spec.ID)
		}
	}
	a.fixtures.Add(spec)
	if err := project.SaveFixtures(a.fixturesPath, a.fixtures); err != nil {
		return err
	}
	a.refreshFixturesList()
	if a.fixture == oldName || a.fixture == spec.Name {
		a.ShowFixture(spec.Name)
	}
	return nil
}

func (a *App) deleteFixture(id string) {
	f := a.fixtures.FindByID(id)
	if f == nil {
		return
	}
	name := f.Name
	dialog.ShowConfirm("Delete Fixture", fmt.Sprintf("Delete fixture %q?", name), func(ok bool) {
		if !ok {
			return
		}
		a.fixtures.Remove(id)
		if err := project.SaveFixtures(a.fixturesPath, a.fixtures); err != nil {
			dialog.ShowError(err, a.window)
		}
		if a.fixture == name {
			a.fixture = ""
			a.result = nil
			a.history.Clear()
			a.refreshPreview()
		}
		a.refreshFixturesList()
	}, a.window)
}

// ─── Files ─────────────────────────────────────────────────

func (a *App) openFixtureFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		if err := a.loadFixtureFile(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

// loadFixtureFile adds a fixture definition file to the store and shows it.
func (a *App) loadFixtureFile(path string) error {
	spec, err := project.LoadFixtureFile(path)
	if err != nil {
		return err
	}
	a.fixtures.Add(spec)
	a.config.AddRecentFixture(path, 10)
	a.refreshFixturesList()
	a.ShowFixture(spec.Name)
	return nil
}

func (a *App) saveFixtureFile() {
	spec := a.currentSpec()
	if spec == nil {
		dialog.ShowInformation("No fixture", "Pick a fixture first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.SaveFixtureFile(writer.URI().Path(), *spec); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(spec.Name + ".yaml")
	d.Show()
}

// importRequests adds imported widget requests to the current fixture.
func (a *App) importRequests(load func(path string) importer.ImportResult) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(load(reader.URI().Path()))
	}, a.window)
}

func (a *App) importObstacles() {
	spec := a.currentSpec()
	if spec == nil {
		dialog.ShowInformation("No fixture", "Pick a fixture first.", a.window)
		return
	}
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(importer.ImportDXF(reader.URI().Path(), spec.Viewport.Height))
	}, a.window)
}

// applyImport merges an import into the current fixture. It returns the
// number of requests and obstacles added.
func (a *App) applyImport(result importer.ImportResult) (int, int, error) {
	spec := a.currentSpec()
	if spec == nil {
		return 0, 0, errors.New("pick a fixture first")
	}
	spec.Extra = append(spec.Extra, result.Requests...)
	spec.Obstacles = append(spec.Obstacles, result.Obstacles...)
	return len(result.Requests), len(result.Obstacles), nil
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import", "warning", w)
	}

	requests, obstacles, err := a.applyImport(result)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if requests == 0 && obstacles == 0 {
		return
	}
	a.Reshuffle()

	msg := fmt.Sprintf("Imported %d widgets and %d obstacles.", requests, obstacles)
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func (a *App) exportResult(ext string, write func(path string, r model.LayoutResult) error) {
	if a.result == nil {
		dialog.ShowInformation("No layout", "Lay out a fixture before exporting.", a.window)
		return
	}
	result := *a.result
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path, result); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Exported " + filepath.Base(path))
	}, a.window)
	d.SetFileName(fmt.Sprintf("%s-%d.%s", a.fixture, result.Seed, ext))
	d.Show()
}

func (a *App) backupData() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.ExportAllData(path, a.config, a.fixtures); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Backup written to " + path)
	}, a.window)
	d.SetFileName("scatterboard-backup.json")
	d.Show()
}

func (a *App) restoreData() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		data, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config = data.Config
		a.fixtures = data.Fixtures
		a.refreshFixturesList()
		if a.currentSpec() == nil && len(a.fixtures.Fixtures) > 0 {
			a.ShowFixture(a.fixtures.Fixtures[0].Name)
		}
		a.setStatus(fmt.Sprintf("Restored %d fixtures", len(a.fixtures.Fixtures)))
	}, a.window)
}

// SaveConfig persists the application config, including recent fixtures.
func (a *App) SaveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
