package settings

import "github.com/lumipallolabs/driveinfo/internal/model"

// Change is emitted for every setting whose value changed
type Change interface {
	isChange()
}

// UnitBaseChanged is emitted when switching between GB and GiB
type UnitBaseChanged struct {
	Base model.UnitBase
}

func (UnitBaseChanged) isChange() {}

// IncludeNotReadyChanged is emitted when not-ready drives are shown or hidden
type IncludeNotReadyChanged struct {
	Include bool
}

func (IncludeNotReadyChanged) isChange() {}

// ShadingChanged is emitted when alternate row shading is toggled
type ShadingChanged struct {
	Enabled bool
}

func (ShadingChanged) isChange() {}

// KeepOnTopChanged is emitted when the window is pinned or unpinned
type KeepOnTopChanged struct {
	Enabled bool
}

func (KeepOnTopChanged) isChange() {}

// ZoomChanged is emitted when the grid zoom factor changes
type ZoomChanged struct {
	Factor float64
}

func (ZoomChanged) isChange() {}

// WindowMoved is emitted when the saved window position changes
type WindowMoved struct {
	Left, Top float64
}

func (WindowMoved) isChange() {}

// Diff returns one Change per field that differs between old and updated
func Diff(old, updated Settings) []Change {
	var changes []Change
	if old.UnitBase != updated.UnitBase {
		changes = append(changes, UnitBaseChanged{Base: updated.UnitBase})
	}
	if old.IncludeNotReady != updated.IncludeNotReady {
		changes = append(changes, IncludeNotReadyChanged{Include: updated.IncludeNotReady})
	}
	if old.ShadeAlternateRows != updated.ShadeAlternateRows {
		changes = append(changes, ShadingChanged{Enabled: updated.ShadeAlternateRows})
	}
	if old.KeepOnTop != updated.KeepOnTop {
		changes = append(changes, KeepOnTopChanged{Enabled: updated.KeepOnTop})
	}
	if old.GridZoom != updated.GridZoom {
		changes = append(changes, ZoomChanged{Factor: updated.GridZoom})
	}
	if old.WindowLeft != updated.WindowLeft || old.WindowTop != updated.WindowTop {
		changes = append(changes, WindowMoved{Left: updated.WindowLeft, Top: updated.WindowTop})
	}
	return changes
}
