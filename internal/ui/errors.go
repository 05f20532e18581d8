package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

// ErrorOverlay is a modal that reports failures until dismissed
type ErrorOverlay struct {
	messages []string
	width    int
	height   int
}

// Push adds a message naming the failed operation
func (e *ErrorOverlay) Push(operation string, err error) {
	e.messages = append(e.messages, describeError(operation, err))
}

// Dismiss closes the overlay
func (e *ErrorOverlay) Dismiss() {
	e.messages = nil
}

// IsVisible returns whether there is anything to report
func (e ErrorOverlay) IsVisible() bool {
	return len(e.messages) > 0
}

// SetSize sets the dimensions for centering
func (e *ErrorOverlay) SetSize(w, h int) {
	e.width = w
	e.height = h
}

// View renders the overlay
func (e ErrorOverlay) View() string {
	if !e.IsVisible() {
		return ""
	}

	textStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var content strings.Builder
	content.WriteString(ErrorTitleStyle.Render("DriveInfo Error"))
	content.WriteString("\n\n")
	for _, m := range e.messages {
		content.WriteString(textStyle.Render(m))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(dimStyle.Render("Press enter to continue"))

	box := ErrorBoxStyle.Render(content.String())
	return lipgloss.Place(e.width, e.height, lipgloss.Center, lipgloss.Center, box)
}

func describeError(operation string, err error) string {
	var enumErr *model.EnumerationError
	if errors.As(err, &enumErr) {
		return fmt.Sprintf("%s: %s\n  %v", operation, enumErr.Class, enumErr.Err)
	}
	return fmt.Sprintf("%s\n  %v", operation, err)
}
