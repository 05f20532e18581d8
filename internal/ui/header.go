package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/driveinfo/internal/model"
	"github.com/lumipallolabs/driveinfo/internal/settings"
)

// Header displays the app name, build status and active preferences (2 lines)
type Header struct {
	version  string
	width    int
	building bool
	status   string
	spinner  spinner.Model
	settings settings.Settings
	records  []model.Record
	base     model.UnitBase // base the records were computed in
}

// NewHeader creates a new header component
func NewHeader(version string, s settings.Settings) Header {
	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorCyan)),
	)
	return Header{
		version:  version,
		spinner:  sp,
		settings: s,
	}
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// SetBuilding sets the build state and status line text
func (h *Header) SetBuilding(building bool, status string) {
	h.building = building
	h.status = status
}

// Status returns the status line text
func (h Header) Status() string {
	return h.status
}

// SetSettings updates the preferences shown as badges
func (h *Header) SetSettings(s settings.Settings) {
	h.settings = s
}

// SetRecords updates the totals; base is the unit base the records were computed in
func (h *Header) SetRecords(records []model.Record, base model.UnitBase) {
	h.records = records
	h.base = base
}

// Tick starts the spinner animation
func (h Header) Tick() tea.Cmd {
	return h.spinner.Tick
}

// Update advances the spinner while a build is running
func (h Header) Update(msg tea.Msg) (Header, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || !h.building {
		return h, nil
	}
	var cmd tea.Cmd
	h.spinner, cmd = h.spinner.Update(msg)
	return h, cmd
}

// View renders the header
// Line 1: DriveInfo 1.2.0                          Total: X GiB  Free: Y GiB
// Line 2: ⠋ Processing C:\                         [GiB] [shade] [top] 100%
func (h Header) View() string {
	nameStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	versionStyle := lipgloss.NewStyle().
		Foreground(ColorDim)
	labelStyle := lipgloss.NewStyle().
		Foreground(ColorDim)

	// === LINE 1: App name (left) | totals (right) ===
	appName := nameStyle.Render("DriveInfo") + versionStyle.Render(" "+h.version)

	var total, free float64
	var ready int
	for _, r := range h.records {
		if m, ok := r.Metrics(); ok {
			total += m.TotalSize
			free += m.Free
			ready++
		}
	}
	unit := h.base.Suffix()
	totals := labelStyle.Render(fmt.Sprintf("%d drives  ", len(h.records))) +
		labelStyle.Render("Total: ") + StatsStyle.Render(FormatUnits(total)+" "+unit) +
		labelStyle.Render("  Free: ") + StatsStyle.Render(FormatUnits(free)+" "+unit)
	if ready == 0 {
		totals = labelStyle.Render(fmt.Sprintf("%d drives", len(h.records)))
	}

	line1 := spread(appName, totals, h.width)

	// === LINE 2: status (left) | preference badges (right) ===
	status := labelStyle.Render(h.status)
	if h.building {
		status = h.spinner.View() + " " + StatsStyle.Render(h.status)
	}

	badges := []string{
		BadgeOn.Render(h.settings.UnitBase.Suffix()),
		badge("shade", h.settings.ShadeAlternateRows),
		badge("not ready", h.settings.IncludeNotReady),
		badge("top", h.settings.KeepOnTop),
		labelStyle.Render(fmt.Sprintf("%.0f%%", h.settings.GridZoom*100)),
	}
	line2 := spread(status, strings.Join(badges, " "), h.width)

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

func badge(name string, on bool) string {
	if on {
		return BadgeOn.Render(name)
	}
	return BadgeOff.Render(name)
}

// spread places left and right at the edges of a line of the given width
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
