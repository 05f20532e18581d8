package ui

import "github.com/charmbracelet/lipgloss"

// Colors - cyberpunk/neon palette
var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess    = lipgloss.Color("#39FF14") // neon green
	ColorWarning    = lipgloss.Color("#F5A623")
	ColorDanger     = lipgloss.Color("#FF5555") // red
	ColorMuted      = lipgloss.Color("#4A5568") // darker muted
	ColorDim        = lipgloss.Color("#9CA3AF") // labels
	ColorBorder     = lipgloss.Color("#4A5568") // border
	ColorBackground = lipgloss.Color("#1F1F23") // dark background
	ColorCyan       = lipgloss.Color("#00FFFF") // neon cyan
	ColorText       = lipgloss.Color("#E4E4E7") // default text
	ColorAltRow     = lipgloss.Color("#2A2A31") // shaded row background
)

// Styles
var (
	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Grid
	GridBorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	GridHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true).
			Padding(0, 1)

	GridCellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	GridAltRowStyle = GridCellStyle.
			Background(ColorAltRow)

	GridSelectedStyle = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true).
				Padding(0, 1)

	NotReadyStyle = lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true)

	// Capacity map
	CapMapPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Help bar - dimmer with bright key highlights
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3D4555")). // very dim
			Padding(0, 1)

	// Inline key hint (for use in text)
	KeyHint = lipgloss.NewStyle().
		Foreground(ColorCyan).
		Background(lipgloss.Color("#1E3A4C")).
		Padding(0, 1)

	// Help overlay key style (no background for cleaner look)
	HelpOverlayKey = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Padding(0, 1)

	// Toggles shown in the header
	BadgeOn = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorCyan).
		Padding(0, 1)

	BadgeOff = lipgloss.NewStyle().
			Foreground(ColorDim).
			Background(lipgloss.Color("#374151")).
			Padding(0, 1)

	// Error overlay
	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(1, 3)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)
)
