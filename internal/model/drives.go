package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// Drive is a snapshot of one drive as reported by the operating system
type Drive struct {
	Name       string // e.g., "C:\\" or "/mnt/data"
	Type       DriveType
	Format     string // filesystem name, empty when unknown
	Label      string // volume label
	Ready      bool
	TotalBytes uint64
	FreeBytes  uint64 // bytes available to the caller
}

// Source lists the drives known to the operating environment and queries them one at a time
type Source interface {
	// List returns drive names irrespective of readiness
	List(ctx context.Context) ([]string, error)

	// Query reads the current state of a single drive
	Query(ctx context.Context, name string) (Drive, error)
}

// SystemSource returns the drive source for the running platform
func SystemSource() Source {
	return newPlatformSource()
}

// FailureClass identifies why drive enumeration failed
type FailureClass int

const (
	FailureUnknown FailureClass = iota
	FailureIO
	FailurePermission
)

// String returns the name shown in error messages
func (c FailureClass) String() string {
	switch c {
	case FailureIO:
		return "I/O error"
	case FailurePermission:
		return "Security error"
	default:
		return "Unknown error"
	}
}

// ExitCode returns the process exit code used when enumeration failure is fatal
func (c FailureClass) ExitCode() int {
	switch c {
	case FailureIO:
		return 1
	case FailurePermission:
		return 2
	default:
		return 3
	}
}

// EnumerationError is returned when the list of drives cannot be obtained
type EnumerationError struct {
	Class FailureClass
	Err   error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// NewEnumerationError wraps err with its failure class
func NewEnumerationError(err error) *EnumerationError {
	var ee *EnumerationError
	if errors.As(err, &ee) {
		return ee
	}
	return &EnumerationError{Class: ClassifyError(err), Err: err}
}

// ClassifyError maps an operating system error to a failure class
func ClassifyError(err error) FailureClass {
	var ee *EnumerationError
	switch {
	case err == nil:
		return FailureUnknown
	case errors.As(err, &ee):
		return ee.Class
	case errors.Is(err, fs.ErrPermission):
		return FailurePermission
	case isIOError(err):
		return FailureIO
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return FailureIO
	}
	return FailureUnknown
}
