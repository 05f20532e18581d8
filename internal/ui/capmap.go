package ui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

const (
	capMapBorderH = 4 // panel border + horizontal padding
	capMapBorderV = 2 // panel border
	minBlockWidth = 6 // narrower blocks are dropped
	minBlockH     = 3 // border + 1 line text
)

// capBlock is one drive's rectangle in the capacity map
type capBlock struct {
	Record        model.Record
	X, Y          int
	Width, Height int
}

// capItem wraps a record for the squarify algorithm
type capItem struct {
	record   model.Record
	size     float64
	children []*capItem
}

// Size implements squarify.TreeSizer
func (c *capItem) Size() float64 {
	return c.size
}

// NumChildren implements squarify.TreeSizer
func (c *capItem) NumChildren() int {
	return len(c.children)
}

// Child implements squarify.TreeSizer
func (c *capItem) Child(i int) squarify.TreeSizer {
	return c.children[i]
}

// CapacityMap shows ready drives as rectangles sized by capacity, shaded by how full they are
type CapacityMap struct {
	records []model.Record
	base    model.UnitBase
	blocks  []capBlock
	visible bool
	width   int
	height  int
}

// SetRecords sets the drives to lay out
func (c *CapacityMap) SetRecords(records []model.Record, base model.UnitBase) {
	c.records = records
	c.base = base
	c.layout()
}

// Toggle toggles visibility of the map
func (c *CapacityMap) Toggle() {
	c.visible = !c.visible
}

// SetVisible sets visibility of the map
func (c *CapacityMap) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the map is visible
func (c CapacityMap) IsVisible() bool {
	return c.visible
}

// SetSize sets the panel dimensions
func (c *CapacityMap) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.layout()
}

// layout computes the block rectangles for the current records and size
func (c *CapacityMap) layout() {
	c.blocks = nil

	contentW := c.width - capMapBorderH
	contentH := c.height - capMapBorderV
	if contentW < minBlockWidth || contentH < minBlockH {
		return
	}

	root := &capItem{}
	for _, r := range c.records {
		m, ok := r.Metrics()
		if !ok || m.TotalSize <= 0 {
			continue
		}
		root.children = append(root.children, &capItem{record: r, size: m.TotalSize})
		root.size += m.TotalSize
	}
	if len(root.children) == 0 {
		return
	}

	rect := squarify.Rect{X: 0, Y: 0, W: float64(contentW), H: float64(contentH)}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	for i, block := range blocks {
		item, ok := block.TreeSizer.(*capItem)
		if !ok {
			continue
		}
		// depth 0 = children of root
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}

		// Round both edges so adjacent blocks share boundaries
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		w := int(math.Round(block.X+block.W)) - x
		h := int(math.Round(block.Y+block.H)) - y

		if x+w > contentW {
			w = contentW - x
		}
		if y+h > contentH {
			h = contentH - y
		}
		if w < minBlockWidth || h < minBlockH {
			continue
		}

		c.blocks = append(c.blocks, capBlock{
			Record: item.record,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		})
	}
}

// View renders the map
func (c CapacityMap) View() string {
	if len(c.blocks) == 0 {
		return CapMapPanelStyle.Render(NotReadyStyle.Render("No drives with capacity"))
	}

	contentH := c.height - capMapBorderV

	type renderedBlock struct {
		block capBlock
		lines []string
	}
	rendered := make([]renderedBlock, 0, len(c.blocks))
	for _, b := range c.blocks {
		rendered = append(rendered, renderedBlock{b, strings.Split(c.renderBlock(b), "\n")})
	}

	// Composite blocks line by line
	var out []string
	for y := 0; y < contentH; y++ {
		type segment struct {
			x, width int
			line     string
		}
		var segments []segment
		for _, rb := range rendered {
			idx := y - rb.block.Y
			if idx >= 0 && idx < len(rb.lines) && idx < rb.block.Height {
				segments = append(segments, segment{rb.block.X, rb.block.Width, rb.lines[idx]})
			}
		}
		sort.Slice(segments, func(i, j int) bool {
			return segments[i].x < segments[j].x
		})

		var line strings.Builder
		cur := 0
		for _, s := range segments {
			if s.x > cur {
				line.WriteString(strings.Repeat(" ", s.x-cur))
			}
			line.WriteString(s.line)
			cur = s.x + s.width
		}
		out = append(out, line.String())
	}

	return CapMapPanelStyle.Render(strings.Join(out, "\n"))
}

// renderBlock renders one drive with a border colored by how full it is
func (c CapacityMap) renderBlock(b capBlock) string {
	m, _ := b.Record.Metrics()

	borderColor := ColorSuccess
	switch {
	case m.PercentFree < 0.1:
		borderColor = ColorDanger
	case m.PercentFree < 0.25:
		borderColor = ColorWarning
	}

	innerW := b.Width - 2
	innerH := b.Height - 2
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	lines := []string{b.Record.Name}
	if innerH > 1 {
		lines = append(lines, FormatUnits(m.TotalSize)+" "+c.base.Suffix())
	}
	if innerH > 2 {
		lines = append(lines, FormatPercent(m.PercentFree)+" free")
	}
	if innerH > 3 && b.Record.Label != "" {
		lines = append([]string{b.Record.Label}, lines...)
	}

	return lipgloss.NewStyle().
		Width(innerW).
		Height(innerH).
		MaxWidth(b.Width).
		MaxHeight(b.Height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Foreground(ColorText).
		Render(strings.Join(lines, "\n"))
}
