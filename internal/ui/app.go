package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/driveinfo/internal/core"
	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/settings"
)

// Message types for Bubble Tea
type (
	buildStartMsg    struct{}
	buildEventMsg    struct{ event core.Event }
	buildDoneMsg     struct{}
	settingsEventMsg struct{ event core.SettingsChangedEvent }
	copyDoneMsg      struct {
		rows int
		err  error
	}
)

// Options configures the application
type Options struct {
	Version string

	// FailFast quits with the failure class exit code when drives cannot be enumerated
	FailFast bool

	// ClipboardOut receives the OSC 52 clipboard sequence; defaults to stderr
	ClipboardOut io.Writer
}

// App is the main TUI application model
type App struct {
	// Core controller (business logic)
	ctrl *core.Controller
	opts Options

	// UI Components
	header  Header
	grid    Grid
	capMap  CapacityMap
	help    HelpOverlay
	helpBar help.Model
	errors  ErrorOverlay
	keys    KeyMap

	// Event channels (for continuing to listen after each event)
	buildEventCh    <-chan core.Event
	settingsEventCh <-chan core.Event
	cancelSettings  func()

	exitCode int

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance
func NewApp(ctrl *core.Controller, opts Options) App {
	if opts.ClipboardOut == nil {
		opts.ClipboardOut = os.Stderr
	}

	snap := ctrl.Settings().Snapshot()
	settingsCh, cancel := ctrl.WatchSettings()

	return App{
		ctrl:            ctrl,
		opts:            opts,
		header:          NewHeader(opts.Version, snap),
		grid:            NewGrid(snap.UnitBase, snap.ShadeAlternateRows, snap.GridZoom),
		help:            NewHelpOverlay(opts.Version),
		helpBar:         NewHelpBar(),
		keys:            DefaultKeyMap(),
		settingsEventCh: settingsCh,
		cancelSettings:  cancel,
	}
}

// ExitCode returns the process exit code once the program has finished
func (a App) ExitCode() int {
	return a.exitCode
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	snap := a.ctrl.Settings().Snapshot()
	return tea.Batch(
		tea.SetWindowTitle(windowTitle(a.opts.Version)),
		restoreWindow(snap),
		a.listenForSettingsEvents(),
		func() tea.Msg { return buildStartMsg{} },
	)
}

func windowTitle(version string) string {
	if version == "" {
		return "DriveInfo"
	}
	return "DriveInfo - " + version
}

// restoreWindow applies the saved window position and keep-on-top state
func restoreWindow(s settings.Settings) tea.Cmd {
	return func() tea.Msg {
		if err := MoveWindow(s.WindowLeft, s.WindowTop); err != nil {
			logging.Debug.Printf("Failed to restore window position: %v", err)
		}
		if err := SetKeepOnTop(s.KeepOnTop); err != nil {
			logging.Debug.Printf("Failed to set keep on top: %v", err)
		}
		return nil
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case buildStartMsg:
		return a.startBuild()

	case buildEventMsg:
		return a.handleBuildEvent(msg.event)

	case buildDoneMsg:
		a.buildEventCh = nil
		if a.ctrl.TakePending() {
			logging.Debug.Printf("[TUI] Starting queued refresh")
			return a.startBuild()
		}
		return a, nil

	case settingsEventMsg:
		return a.handleSettingsEvent(msg.event)

	case copyDoneMsg:
		if msg.err != nil {
			a.errors.Push("Copy to clipboard", msg.err)
			return a, nil
		}
		a.header.SetBuilding(a.ctrl.IsBuilding(), fmt.Sprintf("Copied %d rows to clipboard", msg.rows))
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.header, cmd = a.header.Update(msg)
		return a, cmd
	}

	return a, nil
}

// startBuild starts a rebuild, or queues one behind the running build
func (a App) startBuild() (tea.Model, tea.Cmd) {
	eventCh, started := a.ctrl.StartBuild(context.Background())
	if !started {
		a.header.SetBuilding(true, "Refresh queued")
		return a, nil
	}

	// Store channel for continued listening
	a.buildEventCh = eventCh
	a.header.SetBuilding(true, "Reading drives")

	return a, tea.Batch(a.listenForBuildEvents(), a.header.Tick())
}

// handleBuildEvent processes build events and continues listening
func (a App) handleBuildEvent(event core.Event) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case core.BuildStartedEvent:
		a.grid.Clear()
		base := a.ctrl.State().Build.Options.UnitBase
		if !base.Valid() {
			base = a.ctrl.Settings().Snapshot().UnitBase
		}
		a.grid.SetUnitBase(base)
		a.header.SetRecords(nil, base)
		a.header.SetBuilding(true, fmt.Sprintf("Processing %d drives", e.Count))

	case core.RecordAddedEvent:
		a.grid.Add(e.Record)
		a.header.SetRecords(a.grid.Records(), a.grid.UnitBase())
		a.header.SetBuilding(true, "Processing "+e.Record.Name)

	case core.DriveFailedEvent:
		a.errors.Push("Error getting drive information for "+e.Name, e.Err)

	case core.BuildFailedEvent:
		a.header.SetBuilding(false, "Enumeration failed")
		if a.opts.FailFast {
			a.exitCode = e.Err.Class.ExitCode()
			logging.Debug.Printf("[TUI] Fatal enumeration failure, exit code %d: %v", a.exitCode, e.Err)
			return a, a.quit()
		}
		a.errors.Push("Reading drives", e.Err)

	case core.BuildCompletedEvent:
		a.grid.SetRecords(e.Records)
		a.header.SetRecords(e.Records, a.grid.UnitBase())
		a.capMap.SetRecords(e.Records, a.grid.UnitBase())
		a.header.SetBuilding(false, "Processing complete")
	}

	a.updateLayout()
	return a, a.listenForBuildEvents()
}

// listenForBuildEvents creates a command that listens for build events
func (a App) listenForBuildEvents() tea.Cmd {
	if a.buildEventCh == nil {
		return nil
	}
	eventCh := a.buildEventCh
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return buildDoneMsg{}
		}
		return buildEventMsg{event: event}
	}
}

// handleSettingsEvent applies a settings change to the display
func (a App) handleSettingsEvent(e core.SettingsChangedEvent) (tea.Model, tea.Cmd) {
	a.header.SetSettings(a.ctrl.Settings().Snapshot())

	switch c := e.Change.(type) {
	case settings.ShadingChanged:
		a.grid.SetShading(c.Enabled)
	case settings.ZoomChanged:
		a.grid.SetZoom(c.Factor)
		a.updateLayout()
	case settings.KeepOnTopChanged:
		if err := SetKeepOnTop(c.Enabled); err != nil {
			logging.Debug.Printf("Failed to set keep on top: %v", err)
		}
	case settings.WindowMoved:
		if err := MoveWindow(c.Left, c.Top); err != nil {
			logging.Debug.Printf("Failed to move window: %v", err)
		}
	}

	if e.Rebuild {
		model, cmd := a.startBuild()
		return model, tea.Batch(cmd, model.(App).listenForSettingsEvents())
	}
	return a, a.listenForSettingsEvents()
}

// listenForSettingsEvents creates a command that listens for settings changes
func (a App) listenForSettingsEvents() tea.Cmd {
	if a.settingsEventCh == nil {
		return nil
	}
	eventCh := a.settingsEventCh
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return nil // Channel closed
		}
		if e, ok := event.(core.SettingsChangedEvent); ok {
			return settingsEventMsg{event: e}
		}
		return nil
	}
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Error overlay - any key dismisses it
	if a.errors.IsVisible() {
		a.errors.Dismiss()
		return a, nil
	}

	// Help overlay - any key closes it
	if a.help.IsVisible() {
		a.help.SetVisible(false)
		return a, nil
	}

	if a.capMap.IsVisible() && (key.Matches(msg, a.keys.CapacityMap) || msg.String() == "esc") {
		a.capMap.SetVisible(false)
		return a, nil
	}

	store := a.ctrl.Settings()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.quit()

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		return a.startBuild()

	case key.Matches(msg, a.keys.ToggleUnit):
		store.ToggleUnitBase()
		return a, nil

	case key.Matches(msg, a.keys.ToggleNotReady):
		store.ToggleIncludeNotReady()
		return a, nil

	case key.Matches(msg, a.keys.ToggleShading):
		store.ToggleShading()
		return a, nil

	case key.Matches(msg, a.keys.ToggleKeepOnTop):
		store.ToggleKeepOnTop()
		return a, nil

	case key.Matches(msg, a.keys.ZoomIn):
		store.ZoomIn()
		return a, nil

	case key.Matches(msg, a.keys.ZoomOut):
		store.ZoomOut()
		return a, nil

	case key.Matches(msg, a.keys.ZoomReset):
		store.SetGridZoom(settings.DefaultGridZoom)
		return a, nil

	case key.Matches(msg, a.keys.Copy):
		return a, a.copyTable()

	case key.Matches(msg, a.keys.CapacityMap):
		a.capMap.SetRecords(a.grid.Records(), a.grid.UnitBase())
		a.capMap.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.grid.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.grid.MoveDown()
	case key.Matches(msg, a.keys.PageUp):
		a.grid.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.grid.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.grid.GoToTop()
	case key.Matches(msg, a.keys.Bottom):
		a.grid.GoToBottom()
	}

	return a, nil
}

// copyTable copies the displayed table to the clipboard
func (a App) copyTable() tea.Cmd {
	records := a.grid.Records()
	base := a.grid.UnitBase()
	out := a.opts.ClipboardOut
	return func() tea.Msg {
		return copyDoneMsg{rows: len(records), err: CopyTable(out, records, base)}
	}
}

// quit captures the window position, flushes settings and exits
func (a App) quit() tea.Cmd {
	if left, top, ok := WindowPosition(); ok {
		a.ctrl.Settings().SetWindowPosition(left, top)
	}
	if a.cancelSettings != nil {
		a.cancelSettings()
	}
	a.ctrl.Stop()
	return tea.Quit
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	headerHeight := 2
	helpBarHeight := 1

	bodyHeight := a.height - headerHeight - helpBarHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	a.header.SetWidth(a.width)
	a.grid.SetSize(a.width, bodyHeight)
	a.capMap.SetSize(a.width, bodyHeight)
	a.help.SetSize(a.width, a.height)
	a.errors.SetSize(a.width, a.height)
	a.helpBar.Width = a.width
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Reading drives..."
	}

	body := a.grid.View()
	if a.capMap.IsVisible() {
		body = a.capMap.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		body,
		HelpStyle.Render(a.helpBar.View(a.keys)),
	)
	content = lipgloss.NewStyle().MaxHeight(a.height).Render(content)

	// Overlays on top, errors first
	var overlay string
	switch {
	case a.errors.IsVisible():
		overlay = a.errors.View()
	case a.help.IsVisible():
		overlay = a.help.View()
	default:
		return content
	}

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorBackground),
	)
}
