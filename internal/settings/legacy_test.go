package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

func writeLegacy(t *testing.T, dir, version, content string, mod time.Time) string {
	t.Helper()
	vdir := filepath.Join(dir, version)
	if err := os.MkdirAll(vdir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(vdir, LegacyFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLegacyUpgrade(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	older := writeLegacy(t, dir, "1.0.0", `{"KeepOnTop": true}`, now.Add(-time.Hour))
	newer := writeLegacy(t, dir, "1.1.0", `{"Use1024": false, "IncludeNotReady": true, "GridZoom": 1.2}`, now)

	s := NewStore(filepath.Join(dir, FileName))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := s.Snapshot()
	if got.UnitBase != model.UnitDecimal {
		t.Errorf("expected Use1024=false to map to 1000, got %d", got.UnitBase)
	}
	if !got.IncludeNotReady {
		t.Error("expected IncludeNotReady from newest store")
	}
	if got.KeepOnTop {
		t.Error("older store should not be merged in")
	}
	if got.GridZoom != 1.2 {
		t.Errorf("expected zoom 1.2, got %v", got.GridZoom)
	}

	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Errorf("migrated settings not saved: %v", err)
	}
	for _, p := range []string{older, newer} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("legacy store %s should be removed", p)
		}
		if _, err := os.Stat(filepath.Dir(p)); !os.IsNotExist(err) {
			t.Errorf("empty version dir %s should be removed", filepath.Dir(p))
		}
	}
}

func TestLegacyUpgradeRunsOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("keep_on_top: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	legacy := writeLegacy(t, dir, "1.0.0", `{"KeepOnTop": true}`, time.Now())

	s := NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Snapshot().KeepOnTop {
		t.Error("existing settings file should win over legacy store")
	}
	if _, err := os.Stat(legacy); err != nil {
		t.Error("legacy store should be left alone once settings exist")
	}
}

func TestLegacyUnreadableFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	writeLegacy(t, dir, "1.0.0", `{not json`, time.Now())

	s := NewStore(filepath.Join(dir, FileName))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Snapshot() != Defaults() {
		t.Errorf("expected defaults, got %+v", s.Snapshot())
	}
}

func TestFindLegacyStoresMissingDir(t *testing.T) {
	stores, err := findLegacyStores(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stores) != 0 {
		t.Errorf("expected no stores, got %d", len(stores))
	}
}

func TestLegacyUpgradeLeavesForeignFilesAlone(t *testing.T) {
	dir := t.TempDir()

	// Another program's settings.json below the settings directory
	foreign := filepath.Join(dir, "project", ".vscode", LegacyFileName)
	if err := os.MkdirAll(filepath.Dir(foreign), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(foreign, []byte(`{"editor.tabSize": 4, "KeepOnTop": true}`), 0644); err != nil {
		t.Fatal(err)
	}
	// A version directory holding an unrelated JSON file
	unrelated := writeLegacy(t, dir, "2.0.0", `{"theme": "dark"}`, time.Now())
	// A non-version directory holding a legacy-looking file
	named := writeLegacy(t, dir, "backup", `{"IncludeNotReady": true}`, time.Now())

	s := NewStore(filepath.Join(dir, FileName))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Snapshot() != Defaults() {
		t.Errorf("nothing should be migrated, got %+v", s.Snapshot())
	}
	for _, p := range []string{foreign, unrelated, named} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s should survive the upgrade: %v", p, err)
		}
	}
}

func TestLegacyUpgradeOnlyRemovesMigratedStores(t *testing.T) {
	dir := t.TempDir()
	legacy := writeLegacy(t, dir, "1.0.0", `{"KeepOnTop": true}`, time.Now())
	broken := writeLegacy(t, dir, "0.9", `{not json`, time.Now().Add(-time.Hour))

	s := NewStore(filepath.Join(dir, FileName))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.Snapshot().KeepOnTop {
		t.Error("expected KeepOnTop from the legacy store")
	}
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Error("migrated store should be removed")
	}
	if _, err := os.Stat(broken); err != nil {
		t.Errorf("unparsed store should be kept: %v", err)
	}
}

func TestIsVersionDir(t *testing.T) {
	tests := map[string]bool{
		"1.0":      true,
		"1.2.0":    true,
		"v1.2.0.3": true,
		"1":        false,
		"backup":   false,
		"1.x":      false,
		".vscode":  false,
		"1.0-beta": false,
	}
	for name, want := range tests {
		if got := isVersionDir(name); got != want {
			t.Errorf("isVersionDir(%q) = %v, want %v", name, got, want)
		}
	}
}
