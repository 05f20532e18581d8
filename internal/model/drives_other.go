//go:build !windows && !unix

package model

import (
	"context"
	"errors"
	"runtime"
)

type unsupportedSource struct{}

func newPlatformSource() Source {
	return unsupportedSource{}
}

func (unsupportedSource) List(ctx context.Context) ([]string, error) {
	return nil, &EnumerationError{
		Class: FailureUnknown,
		Err:   errors.New("drive enumeration is not supported on " + runtime.GOOS),
	}
}

func (unsupportedSource) Query(ctx context.Context, name string) (Drive, error) {
	return Drive{}, errors.New("drive query is not supported on " + runtime.GOOS)
}

func isIOError(err error) bool {
	return false
}
