package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

// baseColumnWidths are the minimum column widths at zoom 1.0, padding included
var baseColumnWidths = [numColumns]int{8, 10, 8, 14, 12, 12, 10}

// gridChrome is the number of lines the table draws around the rows
// (top border, header, header separator, bottom border)
const gridChrome = 4

// Grid displays the drive records as a table
type Grid struct {
	records  []model.Record
	base     model.UnitBase
	shade    bool
	zoom     float64
	selected int
	offset   int
	width    int
	height   int
}

// NewGrid creates an empty grid
func NewGrid(base model.UnitBase, shade bool, zoom float64) Grid {
	return Grid{
		base:  base,
		shade: shade,
		zoom:  zoom,
	}
}

// Clear removes all rows
func (g *Grid) Clear() {
	g.records = nil
	g.selected = 0
	g.offset = 0
}

// Add appends a row
func (g *Grid) Add(r model.Record) {
	g.records = append(g.records, r)
}

// SetRecords replaces all rows
func (g *Grid) SetRecords(records []model.Record) {
	g.records = append([]model.Record(nil), records...)
	g.clampSelection()
}

// Records returns the displayed rows
func (g Grid) Records() []model.Record {
	return g.records
}

// Len returns the number of rows
func (g Grid) Len() int {
	return len(g.records)
}

// SetUnitBase updates the size column headers
func (g *Grid) SetUnitBase(base model.UnitBase) {
	g.base = base
}

// UnitBase returns the base the headers are shown in
func (g Grid) UnitBase() model.UnitBase {
	return g.base
}

// SetShading enables or disables alternate row shading
func (g *Grid) SetShading(on bool) {
	g.shade = on
}

// SetZoom sets the factor column widths are scaled by
func (g *Grid) SetZoom(zoom float64) {
	g.zoom = zoom
}

// SetSize sets the grid dimensions
func (g *Grid) SetSize(w, h int) {
	g.width = w
	g.height = h
	g.clampSelection()
}

// Selected returns the highlighted record
func (g Grid) Selected() *model.Record {
	if g.selected < 0 || g.selected >= len(g.records) {
		return nil
	}
	r := g.records[g.selected]
	return &r
}

// SelectedIndex returns the index of the highlighted row
func (g Grid) SelectedIndex() int {
	return g.selected
}

// MoveUp moves the selection up one row
func (g *Grid) MoveUp() {
	g.selected--
	g.clampSelection()
}

// MoveDown moves the selection down one row
func (g *Grid) MoveDown() {
	g.selected++
	g.clampSelection()
}

// PageUp moves the selection up one screen
func (g *Grid) PageUp() {
	g.selected -= g.visibleRows()
	g.clampSelection()
}

// PageDown moves the selection down one screen
func (g *Grid) PageDown() {
	g.selected += g.visibleRows()
	g.clampSelection()
}

// GoToTop selects the first row
func (g *Grid) GoToTop() {
	g.selected = 0
	g.clampSelection()
}

// GoToBottom selects the last row
func (g *Grid) GoToBottom() {
	g.selected = len(g.records) - 1
	g.clampSelection()
}

// clampSelection keeps the selection in range and scrolls it into view
func (g *Grid) clampSelection() {
	if g.selected >= len(g.records) {
		g.selected = len(g.records) - 1
	}
	if g.selected < 0 {
		g.selected = 0
	}

	visible := g.visibleRows()
	if g.selected < g.offset {
		g.offset = g.selected
	}
	if g.selected >= g.offset+visible {
		g.offset = g.selected - visible + 1
	}
	if last := len(g.records) - visible; g.offset > last {
		g.offset = last
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

func (g Grid) visibleRows() int {
	rows := g.height - gridChrome
	if rows < 1 {
		return 1
	}
	return rows
}

// ColumnWidths returns the rendered width of every column: the base width scaled by
// the zoom factor, widened to fit the longest cell
func (g Grid) ColumnWidths() []int {
	zoom := g.zoom
	if zoom <= 0 {
		zoom = 1
	}

	widths := make([]int, numColumns)
	for i, w := range baseColumnWidths {
		widths[i] = int(math.Round(float64(w) * zoom))
	}

	fit := func(cells []string) {
		for i, c := range cells {
			// +2 for cell padding
			if w := lipgloss.Width(c) + 2; w > widths[i] {
				widths[i] = w
			}
		}
	}
	fit(Headers(g.base))
	for _, r := range g.records {
		fit(Cells(r))
	}
	return widths
}

// View renders the grid
func (g Grid) View() string {
	widths := g.ColumnWidths()

	start := g.offset
	end := start + g.visibleRows()
	if end > len(g.records) {
		end = len(g.records)
	}
	if start > end {
		start = end
	}
	visible := g.records[start:end]

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(GridBorderStyle).
		Headers(Headers(g.base)...).
		Rows(Rows(visible)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			if row == table.HeaderRow {
				style = GridHeaderStyle
			} else {
				style = g.rowStyle(start+row, visible[row])
			}
			style = style.Width(widths[col])
			if col >= ColSize {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	if len(visible) == 0 {
		return t.Render() + "\n" + NotReadyStyle.Render(" No drives")
	}
	return t.Render()
}

func (g Grid) rowStyle(idx int, r model.Record) lipgloss.Style {
	if idx == g.selected {
		return GridSelectedStyle
	}
	style := GridCellStyle
	if g.shade && idx%2 == 1 {
		style = GridAltRowStyle
	}
	if !r.IsReady() {
		style = style.Foreground(NotReadyStyle.GetForeground()).Italic(true)
	}
	return style
}
