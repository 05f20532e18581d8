//go:build windows

package model

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sys/windows"
)

const semFailCriticalErrors = 0x0001

func init() {
	// Keep Windows from popping "insert a disk" dialogs for empty card readers and CD drives
	windows.SetErrorMode(semFailCriticalErrors)
}

type windowsSource struct{}

func newPlatformSource() Source {
	return windowsSource{}
}

// List returns the root of every logical drive, e.g. "C:\\"
func (windowsSource) List(ctx context.Context) ([]string, error) {
	n, err := windows.GetLogicalDriveStrings(0, nil)
	if err != nil {
		return nil, NewEnumerationError(err)
	}
	if n == 0 {
		return nil, nil
	}

	buf := make([]uint16, n)
	n, err = windows.GetLogicalDriveStrings(uint32(len(buf)), &buf[0])
	if err != nil {
		return nil, NewEnumerationError(err)
	}

	var drives []string
	start := 0
	for i := 0; i < int(n); i++ {
		if buf[i] != 0 {
			continue
		}
		if i > start {
			drives = append(drives, windows.UTF16ToString(buf[start:i]))
		}
		start = i + 1
	}
	return drives, nil
}

// Query reads type, volume information and free space for one drive root
func (windowsSource) Query(ctx context.Context, name string) (Drive, error) {
	root, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return Drive{}, err
	}

	d := Drive{
		Name: name,
		Type: driveTypeFromWindows(windows.GetDriveType(root)),
	}

	var (
		label   [windows.MAX_PATH + 1]uint16
		fsName  [windows.MAX_PATH + 1]uint16
		serial  uint32
		maxComp uint32
		fsFlags uint32
	)
	err = windows.GetVolumeInformation(root,
		&label[0], uint32(len(label)),
		&serial, &maxComp, &fsFlags,
		&fsName[0], uint32(len(fsName)))
	if err != nil {
		if isNotReady(err) {
			return d, nil
		}
		return Drive{}, err
	}
	d.Label = windows.UTF16ToString(label[:])
	d.Format = windows.UTF16ToString(fsName[:])

	var freeToCaller, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(root, &freeToCaller, &total, &totalFree); err != nil {
		if isNotReady(err) {
			return d, nil
		}
		return Drive{}, err
	}

	d.Ready = true
	d.TotalBytes = total
	d.FreeBytes = freeToCaller
	return d, nil
}

func driveTypeFromWindows(t uint32) DriveType {
	switch t {
	case windows.DRIVE_NO_ROOT_DIR:
		return DriveNoRootDirectory
	case windows.DRIVE_REMOVABLE:
		return DriveRemovable
	case windows.DRIVE_FIXED:
		return DriveFixed
	case windows.DRIVE_REMOTE:
		return DriveNetwork
	case windows.DRIVE_CDROM:
		return DriveCDRom
	case windows.DRIVE_RAMDISK:
		return DriveRam
	default:
		return DriveUnknown
	}
}

func isNotReady(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_READY) ||
		errors.Is(err, windows.ERROR_UNRECOGNIZED_VOLUME) ||
		strings.Contains(strings.ToLower(err.Error()), "not ready")
}

func isIOError(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_READY) ||
		errors.Is(err, windows.ERROR_GEN_FAILURE) ||
		errors.Is(err, windows.ERROR_IO_DEVICE) ||
		errors.Is(err, windows.ERROR_CRC) ||
		errors.Is(err, windows.ERROR_SHARING_VIOLATION)
}
