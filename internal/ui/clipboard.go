package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/model"
)

// clipboardLimit caps the payload; most terminals reject larger OSC 52 sequences
const clipboardLimit = 100000

// CopyTable writes the table to the system clipboard through the terminal (OSC 52)
func CopyTable(w io.Writer, records []model.Record, base model.UnitBase) error {
	text := TSV(records, base)
	if len(text) > clipboardLimit {
		return fmt.Errorf("table is too large for the clipboard (%d bytes)", len(text))
	}
	seq := osc52.New(text).Limit(clipboardLimit)

	// Multiplexers need the sequence wrapped to pass it on to the outer terminal
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		seq = seq.Screen()
	}

	_, err := seq.WriteTo(w)
	if err != nil {
		return err
	}
	logging.Debug.Printf("Copied %d rows (%d bytes) to clipboard", len(records), len(text))
	return nil
}
