package model

import "testing"

func TestNewReadyRecord(t *testing.T) {
	d := Drive{
		Name:       "C:\\",
		Type:       DriveFixed,
		Format:     "NTFS",
		Label:      "System",
		Ready:      true,
		TotalBytes: 500_000_000_000,
		FreeBytes:  125_000_000_000,
	}

	r := NewReadyRecord(d, UnitDecimal)
	if r.Name != "C:\\" || r.Format != "NTFS" || r.Label != "System" {
		t.Errorf("unexpected record fields: %+v", r)
	}
	if r.Type.String() != "Fixed" {
		t.Errorf("expected Fixed, got %s", r.Type)
	}
	if !r.IsReady() {
		t.Error("expected ready record")
	}

	m, ok := r.Metrics()
	if !ok {
		t.Fatal("expected metrics")
	}
	if m.TotalSize != 500 || m.Free != 125 || m.PercentFree != 0.25 {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestNewReadyRecordZeroCapacity(t *testing.T) {
	r := NewReadyRecord(Drive{Name: "E:\\", Type: DriveCDRom, Ready: true}, UnitBinary)
	if !r.IsReady() {
		t.Error("zero capacity drive is still ready")
	}
	if _, ok := r.Metrics(); ok {
		t.Error("expected metrics to be absent for zero capacity")
	}
}

func TestNewNotReadyRecord(t *testing.T) {
	r := NewNotReadyRecord("D:\\")
	if r.IsReady() {
		t.Error("expected not ready")
	}
	if r.Type.String() != "Not Ready" {
		t.Errorf("expected type Not Ready, got %s", r.Type)
	}
	if r.Label != NotReadyLabel {
		t.Errorf("expected label %q, got %q", NotReadyLabel, r.Label)
	}
	if r.Format != "" {
		t.Errorf("expected empty format, got %q", r.Format)
	}
	if _, ok := r.Metrics(); ok {
		t.Error("not ready record must not carry metrics")
	}
}

func TestDriveTypeStrings(t *testing.T) {
	want := map[DriveType]string{
		DriveUnknown:         "Unknown",
		DriveNoRootDirectory: "NoRootDirectory",
		DriveRemovable:       "Removable",
		DriveFixed:           "Fixed",
		DriveNetwork:         "Network",
		DriveCDRom:           "CDRom",
		DriveRam:             "Ram",
		DriveNotReady:        "Not Ready",
	}
	for typ, s := range want {
		if typ.String() != s {
			t.Errorf("DriveType(%d).String() = %q, want %q", typ, typ.String(), s)
		}
	}
}
