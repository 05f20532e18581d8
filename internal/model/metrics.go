package model

import "fmt"

// UnitBase is the divisor base used to turn byte counts into display units
type UnitBase int

const (
	UnitDecimal UnitBase = 1000 // GB
	UnitBinary  UnitBase = 1024 // GiB
)

// Valid reports whether b is one of the supported bases
func (b UnitBase) Valid() bool {
	return b == UnitDecimal || b == UnitBinary
}

// Divisor returns B^3
func (b UnitBase) Divisor() float64 {
	f := float64(b)
	return f * f * f
}

// Suffix returns the unit name shown in column headers
func (b UnitBase) Suffix() string {
	if b == UnitDecimal {
		return "GB"
	}
	return "GiB"
}

// Toggle returns the other base
func (b UnitBase) Toggle() UnitBase {
	if b == UnitDecimal {
		return UnitBinary
	}
	return UnitDecimal
}

// ParseUnitBase parses "1000"/"gb" or "1024"/"gib"
func ParseUnitBase(s string) (UnitBase, error) {
	switch s {
	case "1000", "gb", "GB":
		return UnitDecimal, nil
	case "1024", "gib", "GiB", "GIB":
		return UnitBinary, nil
	}
	return 0, fmt.Errorf("invalid unit base %q (want 1000 or 1024)", s)
}

// Metrics holds a drive's capacity in display units
type Metrics struct {
	TotalSize   float64 // total capacity in GB or GiB
	Free        float64 // space available to the caller in GB or GiB
	PercentFree float64 // fraction in [0,1]
}

// ComputeMetrics converts raw byte counts to display units.
// ok is false when totalBytes is zero; percent free is undefined then.
func ComputeMetrics(totalBytes, freeBytes uint64, base UnitBase) (m Metrics, ok bool) {
	if totalBytes == 0 {
		return Metrics{}, false
	}
	div := base.Divisor()
	return Metrics{
		TotalSize:   float64(totalBytes) / div,
		Free:        float64(freeBytes) / div,
		PercentFree: float64(freeBytes) / float64(totalBytes),
	}, true
}
