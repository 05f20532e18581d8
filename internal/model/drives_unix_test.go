//go:build unix

package model

import (
	"testing"

	"github.com/shirou/gopsutil/v3/disk"
)

func TestUnescapeLabel(t *testing.T) {
	tests := map[string]string{
		"DATA":          "DATA",
		`My\x20Disk`:    "My Disk",
		`a\x2fb`:        "a/b",
		`trailing\x2`:   `trailing\x2`,
		`bad\xZZescape`: `bad\xZZescape`,
	}
	for in, want := range tests {
		if got := unescapeLabel(in); got != want {
			t.Errorf("unescapeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDriveTypeFromPartition(t *testing.T) {
	tests := []struct {
		part disk.PartitionStat
		want DriveType
	}{
		{disk.PartitionStat{Mountpoint: "/srv", Fstype: "nfs4"}, DriveNetwork},
		{disk.PartitionStat{Mountpoint: "/cdrom", Fstype: "iso9660"}, DriveCDRom},
		{disk.PartitionStat{Mountpoint: "/tmp", Fstype: "tmpfs"}, DriveRam},
		{disk.PartitionStat{Fstype: "ext4"}, DriveUnknown},
	}
	for _, tt := range tests {
		if got := driveTypeFromPartition(tt.part); got != tt.want {
			t.Errorf("driveTypeFromPartition(%+v) = %v, want %v", tt.part, got, tt.want)
		}
	}
}

func TestIsPseudoFilesystem(t *testing.T) {
	if !isPseudoFilesystem("devfs") {
		t.Error("devfs should be filtered")
	}
	if isPseudoFilesystem("ext4") {
		t.Error("ext4 should not be filtered")
	}
}
