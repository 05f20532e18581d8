//go:build windows

package ui

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
	procSetWindowPos     = user32.NewProc("SetWindowPos")
	procGetWindowRect    = user32.NewProc("GetWindowRect")
)

const (
	hwndTopmost   = ^uintptr(0) // HWND_TOPMOST (-1)
	hwndNoTopmost = ^uintptr(1) // HWND_NOTOPMOST (-2)

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
)

var errNoConsoleWindow = errors.New("no console window")

type winRect struct {
	Left, Top, Right, Bottom int32
}

func consoleWindow() (uintptr, error) {
	if err := procGetConsoleWindow.Find(); err != nil {
		return 0, err
	}
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return 0, errNoConsoleWindow
	}
	return hwnd, nil
}

// SetKeepOnTop pins the console window above other windows, or releases it
func SetKeepOnTop(on bool) error {
	hwnd, err := consoleWindow()
	if err != nil {
		return err
	}
	after := hwndNoTopmost
	if on {
		after = hwndTopmost
	}
	r, _, err := procSetWindowPos.Call(hwnd, after, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	if r == 0 {
		return err
	}
	return nil
}

// MoveWindow moves the console window's top-left corner to left, top
func MoveWindow(left, top float64) error {
	hwnd, err := consoleWindow()
	if err != nil {
		return err
	}
	r, _, err := procSetWindowPos.Call(hwnd, 0, uintptr(int32(left)), uintptr(int32(top)), 0, 0,
		swpNoSize|swpNoZOrder|swpNoActivate)
	if r == 0 {
		return err
	}
	return nil
}

// WindowPosition returns the console window's top-left corner
func WindowPosition() (left, top float64, ok bool) {
	hwnd, err := consoleWindow()
	if err != nil {
		return 0, 0, false
	}
	var rc winRect
	r, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return 0, 0, false
	}
	return float64(rc.Left), float64(rc.Top), true
}
