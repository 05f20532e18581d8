package logging

import (
	"io"
	"log"
	"os"
)

// EnvVar enables debug logging when set to any non-empty value
const EnvVar = "DRIVEINFO_DEBUG"

var (
	Debug    *log.Logger
	Build    *log.Logger
	Settings *log.Logger
	Enabled  bool
)

func init() {
	// Only enable logging if DRIVEINFO_DEBUG environment variable is set
	if os.Getenv(EnvVar) == "" {
		disable()
		return
	}
	Enable("debug.log")
}

func disable() {
	Debug = log.New(io.Discard, "", 0)
	Build = log.New(io.Discard, "", 0)
	Settings = log.New(io.Discard, "", 0)
	Enabled = false
}

// Enable routes all loggers to the given file.
// The terminal belongs to the TUI, so stderr is only used when the file cannot be opened.
func Enable(path string) {
	Enabled = true

	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Build = log.New(os.Stderr, "[BUILD] ", log.Ldate|log.Ltime)
		Settings = log.New(os.Stderr, "[SETTINGS] ", log.Ldate|log.Ltime)
		return
	}

	// Loggers share the file and differ only by prefix
	Debug = log.New(logFile, "[debug] ", log.Lmicroseconds)
	Build = log.New(logFile, "[build] ", log.Lmicroseconds)
	Settings = log.New(logFile, "[settings] ", log.Lmicroseconds)
}
