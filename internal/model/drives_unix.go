//go:build unix

package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/shirou/gopsutil/v3/disk"
)

// unixSource lists mounted filesystems through gopsutil
type unixSource struct {
	mu     sync.Mutex
	parts  map[string]disk.PartitionStat // mountpoint -> partition from the last List
	labels map[string]string             // device -> label
}

func newPlatformSource() Source {
	return &unixSource{}
}

// List returns the mount point of every physical filesystem
func (s *unixSource) List(ctx context.Context) ([]string, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, NewEnumerationError(err)
	}

	parts := make(map[string]disk.PartitionStat, len(partitions))
	names := make([]string, 0, len(partitions))
	for _, p := range partitions {
		if isPseudoFilesystem(p.Fstype) {
			continue
		}
		if _, seen := parts[p.Mountpoint]; seen {
			continue
		}
		parts[p.Mountpoint] = p
		names = append(names, p.Mountpoint)
	}

	s.mu.Lock()
	s.parts = parts
	s.labels = readDiskLabels()
	s.mu.Unlock()

	return names, nil
}

// Query reads usage for one mount point
func (s *unixSource) Query(ctx context.Context, name string) (Drive, error) {
	s.mu.Lock()
	p, ok := s.parts[name]
	label := s.labels[p.Device]
	s.mu.Unlock()
	if !ok {
		p = disk.PartitionStat{Mountpoint: name}
	}

	d := Drive{
		Name:   name,
		Type:   driveTypeFromPartition(p),
		Format: p.Fstype,
		Label:  label,
	}
	if d.Label == "" {
		d.Label = volumeLabel(name)
	}

	usage, err := disk.UsageWithContext(ctx, name)
	if err != nil {
		if isNotReady(err) {
			return d, nil
		}
		return Drive{}, err
	}

	if d.Format == "" {
		d.Format = usage.Fstype
	}
	d.Ready = true
	d.TotalBytes = usage.Total
	d.FreeBytes = usage.Free
	return d, nil
}

// isPseudoFilesystem returns true for filesystems that never hold user data
func isPseudoFilesystem(fsType string) bool {
	switch fsType {
	case "devfs", "autofs", "mtmfs", "nullfs", "squashfs", "overlay", "proc", "sysfs", "devtmpfs":
		return true
	}
	return false
}

func driveTypeFromPartition(p disk.PartitionStat) DriveType {
	switch strings.ToLower(p.Fstype) {
	case "nfs", "nfs4", "cifs", "smbfs", "smb3", "afpfs", "webdav", "9p", "fuse.sshfs", "sshfs":
		return DriveNetwork
	case "iso9660", "udf", "cd9660", "cddafs":
		return DriveCDRom
	case "tmpfs", "ramfs":
		return DriveRam
	}
	if p.Mountpoint == "" {
		return DriveUnknown
	}
	if isRemovable(p) {
		return DriveRemovable
	}
	return DriveFixed
}

func isRemovable(p disk.PartitionStat) bool {
	if runtime.GOOS == "darwin" {
		return strings.HasPrefix(p.Mountpoint, "/Volumes/")
	}

	dev := filepath.Base(p.Device)
	for _, path := range []string{
		filepath.Join("/sys/class/block", dev, "removable"),
		filepath.Join("/sys/class/block", dev, "..", "removable"),
	} {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data)) == "1"
		}
	}

	return strings.HasPrefix(p.Mountpoint, "/media/") || strings.HasPrefix(p.Mountpoint, "/run/media/")
}

// readDiskLabels maps block devices to filesystem labels using /dev/disk/by-label
func readDiskLabels() map[string]string {
	labels := make(map[string]string)
	const byLabel = "/dev/disk/by-label"

	entries, err := os.ReadDir(byLabel)
	if err != nil {
		return labels
	}
	for _, entry := range entries {
		target, err := filepath.EvalSymlinks(filepath.Join(byLabel, entry.Name()))
		if err != nil {
			continue
		}
		labels[target] = unescapeLabel(entry.Name())
	}
	return labels
}

// unescapeLabel decodes the \xHH escapes udev uses in label links
func unescapeLabel(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' {
			if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// volumeLabel falls back to the mount directory name for removable volumes
func volumeLabel(mountpoint string) string {
	if mountpoint == "/" {
		return ""
	}
	if runtime.GOOS == "darwin" && strings.HasPrefix(mountpoint, "/Volumes/") {
		return filepath.Base(mountpoint)
	}
	return ""
}

func isNotReady(err error) bool {
	return errors.Is(err, syscall.ENOENT) ||
		errors.Is(err, syscall.ENXIO) ||
		errors.Is(err, syscall.ENODEV) ||
		errors.Is(err, syscall.ENOTCONN) ||
		errors.Is(err, syscall.ESTALE) ||
		errors.Is(err, syscall.EIO)
}

func isIOError(err error) bool {
	return errors.Is(err, syscall.EIO) ||
		errors.Is(err, syscall.ENXIO) ||
		errors.Is(err, syscall.ENODEV)
}
