//go:build !windows

package ui

// SetKeepOnTop is not supported outside Windows; terminals manage their own windows
func SetKeepOnTop(on bool) error {
	return nil
}

// MoveWindow is not supported outside Windows
func MoveWindow(left, top float64) error {
	return nil
}

// WindowPosition is not available outside Windows
func WindowPosition() (left, top float64, ok bool) {
	return 0, 0, false
}
