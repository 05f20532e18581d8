package ui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

// Column indexes of the drive grid
const (
	ColName = iota
	ColType
	ColFormat
	ColLabel
	ColSize
	ColFree
	ColPercentFree
	numColumns
)

var printer = message.NewPrinter(language.English)

// Headers returns the grid column titles for the given unit base
func Headers(base model.UnitBase) []string {
	suffix := base.Suffix()
	return []string{
		"Name",
		"Type",
		"Format",
		"Label",
		"Size (" + suffix + ")",
		"Free (" + suffix + ")",
		"% Free",
	}
}

// FormatUnits formats a size in GB/GiB with one decimal and digit grouping
func FormatUnits(v float64) string {
	return printer.Sprintf("%.1f", v)
}

// FormatPercent formats a fraction in [0,1] as a percentage
func FormatPercent(f float64) string {
	return printer.Sprintf("%.2f%%", f*100)
}

// Cells returns the display text of every column of a record.
// Not-ready and zero-capacity records leave the numeric columns empty.
func Cells(r model.Record) []string {
	cells := make([]string, numColumns)
	cells[ColName] = r.Name
	cells[ColType] = r.Type.String()
	cells[ColFormat] = r.Format
	cells[ColLabel] = r.Label

	if m, ok := r.Metrics(); ok {
		cells[ColSize] = FormatUnits(m.TotalSize)
		cells[ColFree] = FormatUnits(m.Free)
		cells[ColPercentFree] = FormatPercent(m.PercentFree)
	}
	return cells
}

// Rows returns the cells of every record, in order
func Rows(records []model.Record) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = Cells(r)
	}
	return rows
}

// TSV serializes the header and rows as tab-separated text with CRLF row delimiters
func TSV(records []model.Record, base model.UnitBase) string {
	var b strings.Builder
	b.WriteString(strings.Join(Headers(base), "\t"))
	b.WriteString("\r\n")
	for _, row := range Rows(records) {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\r\n")
	}
	return b.String()
}
