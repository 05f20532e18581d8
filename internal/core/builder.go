package core

import (
	"context"

	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/model"
)

// BuildOptions are the settings a build reads
type BuildOptions struct {
	UnitBase        model.UnitBase
	IncludeNotReady bool
}

// Build enumerates src and produces one record per drive, in enumeration order.
//
// Drives are processed one at a time. A drive whose query fails is reported through
// DriveFailedEvent and omitted; the remaining drives are still processed. When
// enumeration itself fails, BuildFailedEvent is emitted and no records are produced.
// emit may be nil.
func Build(ctx context.Context, src model.Source, opts BuildOptions, emit func(Event)) ([]model.Record, error) {
	if emit == nil {
		emit = func(Event) {}
	}
	if !opts.UnitBase.Valid() {
		opts.UnitBase = model.UnitBinary
	}

	names, err := src.List(ctx)
	if err != nil {
		enumErr := model.NewEnumerationError(err)
		logging.Build.Printf("Enumeration failed: %v", enumErr)
		emit(BuildFailedEvent{Err: enumErr})
		return nil, enumErr
	}

	logging.Build.Printf("Enumerated %d drives (base %d, include not ready: %v)",
		len(names), opts.UnitBase, opts.IncludeNotReady)
	emit(BuildStartedEvent{Count: len(names)})

	records := make([]model.Record, 0, len(names))
	failed := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			logging.Build.Printf("Build cancelled after %d of %d drives", len(records)+failed, len(names))
			return records, err
		}

		d, err := src.Query(ctx, name)
		if err != nil {
			failed++
			logging.Build.Printf("Skipping %s: %v", name, err)
			emit(DriveFailedEvent{Name: name, Err: err})
			continue
		}
		if d.Name == "" {
			d.Name = name
		}

		var rec model.Record
		switch {
		case d.Ready:
			rec = model.NewReadyRecord(d, opts.UnitBase)
		case opts.IncludeNotReady:
			rec = model.NewNotReadyRecord(d.Name)
		default:
			logging.Build.Printf("Skipping %s: not ready", name)
			continue
		}

		records = append(records, rec)
		emit(RecordAddedEvent{Record: rec})
	}

	emit(BuildCompletedEvent{Records: records, Failed: failed})
	return records, nil
}
