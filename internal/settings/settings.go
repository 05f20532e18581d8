// Package settings persists the user's display preferences and reports changes to them.
package settings

import (
	"math"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

const (
	DefaultGridZoom  = 1.0
	MinGridZoom      = 0.9
	MaxGridZoom      = 1.3
	GridZoomStep     = 0.05
	DefaultWindowPos = 100.0
)

// Settings holds the persisted preferences
type Settings struct {
	UnitBase           model.UnitBase `yaml:"unit_base"`
	IncludeNotReady    bool           `yaml:"include_not_ready"`
	ShadeAlternateRows bool           `yaml:"shade_alternate_rows"`
	KeepOnTop          bool           `yaml:"keep_on_top"`
	GridZoom           float64        `yaml:"grid_zoom"`
	WindowLeft         float64        `yaml:"window_left"`
	WindowTop          float64        `yaml:"window_top"`
}

// Defaults returns the settings used when nothing has been saved yet
func Defaults() Settings {
	return Settings{
		UnitBase:           model.UnitBinary,
		IncludeNotReady:    false,
		ShadeAlternateRows: true,
		KeepOnTop:          false,
		GridZoom:           DefaultGridZoom,
		WindowLeft:         DefaultWindowPos,
		WindowTop:          DefaultWindowPos,
	}
}

// Normalize replaces out-of-range values with their defaults or nearest bound
func (s Settings) Normalize() Settings {
	if !s.UnitBase.Valid() {
		s.UnitBase = model.UnitBinary
	}
	s.GridZoom = clampZoom(s.GridZoom)
	if s.WindowLeft < 0 || math.IsNaN(s.WindowLeft) {
		s.WindowLeft = DefaultWindowPos
	}
	if s.WindowTop < 0 || math.IsNaN(s.WindowTop) {
		s.WindowTop = DefaultWindowPos
	}
	return s
}

func clampZoom(z float64) float64 {
	if z <= 0 || math.IsNaN(z) {
		return DefaultGridZoom
	}
	z = math.Round(z*100) / 100
	if z < MinGridZoom {
		return MinGridZoom
	}
	if z > MaxGridZoom {
		return MaxGridZoom
	}
	return z
}
