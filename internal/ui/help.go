package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 14 // Width for key column in help text (includes padding)

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	version string
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(version string) HelpOverlay {
	return HelpOverlay{
		visible: false,
		version: version,
	}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (ho *HelpOverlay) SetSize(w, h int) {
	ho.width = w
	ho.height = h
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 3)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	keyStyle := HelpOverlayKey
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var content strings.Builder

	nameStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	versionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted)

	content.WriteString(nameStyle.Render("DriveInfo"))
	if h.version != "" {
		content.WriteString(versionStyle.Render(" " + h.version))
	}
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("Navigation"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "↑↓ jk", "Select row"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "PgUp/PgDn", "Scroll faster"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "g / G", "Top / Bottom"))

	content.WriteString(sectionStyle.Render("Drives"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "F5 / r", "Refresh"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "u", "Switch GB / GiB"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "n", "Show not ready drives"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "m", "Capacity map"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Ctrl+C / y", "Copy table"))

	content.WriteString(sectionStyle.Render("Display"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "F7 / s", "Shade alternate rows"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "+ / -", "Zoom in / out"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "0", "Reset zoom"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "t", "Keep on top"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "q", "Quit"))

	content.WriteString("\n")
	content.WriteString(dimStyle.Render("Press any key to close"))

	box := boxStyle.Render(content.String())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// NewHelpBar returns the bottom help bar model
func NewHelpBar() help.Model {
	h := help.New()
	h.ShortSeparator = "   "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(ColorCyan)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(ColorDim)
	h.Styles.ShortSeparator = HelpStyle
	h.Styles.Ellipsis = HelpStyle
	return h
}
