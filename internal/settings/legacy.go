package settings

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/model"
)

// LegacyFileName is the per-version JSON store written by releases before the YAML file
const LegacyFileName = "settings.json"

// legacySettings mirrors the old store; absent fields keep their defaults
type legacySettings struct {
	IncludeNotReady *bool    `json:"IncludeNotReady"`
	ShadeAltRows    *bool    `json:"ShadeAltRows"`
	KeepOnTop       *bool    `json:"KeepOnTop"`
	Use1024         *bool    `json:"Use1024"`
	GridZoom        *float64 `json:"GridZoom"`
	WindowLeft      *float64 `json:"WindowLeft"`
	WindowTop       *float64 `json:"WindowTop"`
}

func (l legacySettings) toSettings() Settings {
	s := Defaults()
	if l.IncludeNotReady != nil {
		s.IncludeNotReady = *l.IncludeNotReady
	}
	if l.ShadeAltRows != nil {
		s.ShadeAlternateRows = *l.ShadeAltRows
	}
	if l.KeepOnTop != nil {
		s.KeepOnTop = *l.KeepOnTop
	}
	if l.Use1024 != nil {
		s.UnitBase = model.UnitDecimal
		if *l.Use1024 {
			s.UnitBase = model.UnitBinary
		}
	}
	if l.GridZoom != nil {
		s.GridZoom = *l.GridZoom
	}
	if l.WindowLeft != nil {
		s.WindowLeft = *l.WindowLeft
	}
	if l.WindowTop != nil {
		s.WindowTop = *l.WindowTop
	}
	return s.Normalize()
}

type legacyStore struct {
	path     string
	modTime  time.Time
	settings Settings
}

var errNotLegacy = errors.New("no legacy settings keys")

// isVersionDir reports whether name looks like a release directory ("1.2.0", "v1.2.0.3")
func isVersionDir(name string) bool {
	parts := strings.Split(strings.TrimPrefix(name, "v"), ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 32); err != nil {
			return false
		}
	}
	return true
}

// findLegacyStores returns the legacy stores in the version directories directly
// below dir, newest first. Files that are not legacy settings are left out.
func findLegacyStores(dir string) ([]legacyStore, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var (
		mu     sync.Mutex
		stores []legacyStore
	)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	// fastwalk calls the walk func from several goroutines
	err := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1

		if d.IsDir() {
			// Only <dir>/<version>/ is searched
			if depth == 1 && isVersionDir(d.Name()) {
				return nil
			}
			return fs.SkipDir
		}
		if depth != 2 || d.Name() != LegacyFileName {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		migrated, err := readLegacy(path)
		if err != nil {
			logging.Settings.Printf("Skipping %s: %v", path, err)
			return nil
		}

		mu.Lock()
		stores = append(stores, legacyStore{path: path, modTime: info.ModTime(), settings: migrated})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(stores, func(i, j int) bool {
		if !stores[i].modTime.Equal(stores[j].modTime) {
			return stores[i].modTime.After(stores[j].modTime)
		}
		return stores[i].path > stores[j].path
	})
	return stores, nil
}

// readLegacy parses a legacy store. A file without any legacy key is errNotLegacy.
func readLegacy(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	var l legacySettings
	if err := json.Unmarshal(data, &l); err != nil {
		return Settings{}, err
	}
	if l == (legacySettings{}) {
		return Settings{}, errNotLegacy
	}
	return l.toSettings(), nil
}

// removeLegacyStores deletes migrated stores and the version directories they leave empty
func removeLegacyStores(root string, stores []legacyStore) {
	for _, st := range stores {
		if err := os.Remove(st.path); err != nil {
			logging.Settings.Printf("Failed to remove legacy settings %s: %v", st.path, err)
			continue
		}
		dir := filepath.Dir(st.path)
		if dir != root {
			// Only succeeds when the directory is empty
			_ = os.Remove(dir)
		}
	}
}
