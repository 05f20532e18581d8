package model

// NotReadyLabel is shown in place of the volume label for drives that are not ready
const NotReadyLabel = "Not Ready"

// DriveType classifies a drive the way the operating system reports it
type DriveType int

const (
	DriveUnknown DriveType = iota
	DriveNoRootDirectory
	DriveRemovable
	DriveFixed
	DriveNetwork
	DriveCDRom
	DriveRam
	DriveNotReady
)

// String returns the display name of the drive type
func (t DriveType) String() string {
	switch t {
	case DriveNoRootDirectory:
		return "NoRootDirectory"
	case DriveRemovable:
		return "Removable"
	case DriveFixed:
		return "Fixed"
	case DriveNetwork:
		return "Network"
	case DriveCDRom:
		return "CDRom"
	case DriveRam:
		return "Ram"
	case DriveNotReady:
		return "Not Ready"
	default:
		return "Unknown"
	}
}

// Capacity is the readiness state of a record: Ready or NotReady
type Capacity interface {
	isCapacity()
}

// Ready is the capacity of a drive that answered the capacity query.
// Metrics is nil when the drive reported zero total bytes.
type Ready struct {
	Metrics *Metrics
}

func (Ready) isCapacity() {}

// NotReady is the capacity of a drive that could not be queried
type NotReady struct{}

func (NotReady) isCapacity() {}

// Record is one row of the drive grid
type Record struct {
	Name     string
	Type     DriveType
	Format   string
	Label    string
	Capacity Capacity
}

// NewReadyRecord builds a record for a ready drive using the given unit base
func NewReadyRecord(d Drive, base UnitBase) Record {
	r := Record{
		Name:   d.Name,
		Type:   d.Type,
		Format: d.Format,
		Label:  d.Label,
	}
	if m, ok := ComputeMetrics(d.TotalBytes, d.FreeBytes, base); ok {
		r.Capacity = Ready{Metrics: &m}
	} else {
		r.Capacity = Ready{}
	}
	return r
}

// NewNotReadyRecord builds the placeholder row for a drive that is not ready
func NewNotReadyRecord(name string) Record {
	return Record{
		Name:     name,
		Type:     DriveNotReady,
		Label:    NotReadyLabel,
		Capacity: NotReady{},
	}
}

// Metrics returns the record's metrics, if any
func (r Record) Metrics() (Metrics, bool) {
	ready, ok := r.Capacity.(Ready)
	if !ok || ready.Metrics == nil {
		return Metrics{}, false
	}
	return *ready.Metrics, true
}

// IsReady reports whether the record describes a ready drive
func (r Record) IsReady() bool {
	_, ok := r.Capacity.(Ready)
	return ok
}
