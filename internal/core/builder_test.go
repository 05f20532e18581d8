package core

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

const gb = 1000 * 1000 * 1000

// fakeSource serves fixed drives; Query fails for names in queryErr
type fakeSource struct {
	mu       sync.Mutex
	names    []string
	drives   map[string]model.Drive
	listErr  error
	queryErr map[string]error
	block    chan struct{} // when set, List waits on it
	lists    int
}

func (f *fakeSource) List(ctx context.Context) ([]string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	f.lists++
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.names, nil
}

func (f *fakeSource) Query(_ context.Context, name string) (model.Drive, error) {
	if err := f.queryErr[name]; err != nil {
		return model.Drive{}, err
	}
	return f.drives[name], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		names: []string{"C:\\", "D:\\", "E:\\"},
		drives: map[string]model.Drive{
			"C:\\": {Name: "C:\\", Type: model.DriveFixed, Format: "NTFS", Label: "System",
				Ready: true, TotalBytes: 500 * gb, FreeBytes: 125 * gb},
			"D:\\": {Name: "D:\\", Type: model.DriveCDRom},
			"E:\\": {Name: "E:\\", Type: model.DriveRemovable, Format: "FAT32", Label: "USB",
				Ready: true, TotalBytes: 16 * gb, FreeBytes: 8 * gb},
		},
	}
}

func recordNames(records []model.Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

func TestBuildSkipsNotReady(t *testing.T) {
	records, err := Build(context.Background(), newFakeSource(), BuildOptions{UnitBase: model.UnitDecimal}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got, want := recordNames(records), []string{"C:\\", "E:\\"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	m, ok := records[0].Metrics()
	if !ok {
		t.Fatal("expected metrics for C:")
	}
	if m.TotalSize != 500 || m.Free != 125 || m.PercentFree != 0.25 {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestBuildIncludesNotReady(t *testing.T) {
	records, err := Build(context.Background(), newFakeSource(),
		BuildOptions{UnitBase: model.UnitDecimal, IncludeNotReady: true}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	d := records[1]
	if d.Name != "D:\\" || d.Type != model.DriveNotReady || d.Label != model.NotReadyLabel {
		t.Errorf("unexpected not-ready record %+v", d)
	}
	if d.Format != "" {
		t.Errorf("not-ready record should have no format, got %q", d.Format)
	}
	if _, ok := d.Metrics(); ok {
		t.Error("not-ready record must not carry metrics")
	}
	if d.IsReady() {
		t.Error("record should not be ready")
	}
}

func TestBuildIsolatesDriveFailures(t *testing.T) {
	src := newFakeSource()
	src.queryErr = map[string]error{"C:\\": errors.New("device hung")}

	var events []Event
	records, err := Build(context.Background(), src, BuildOptions{UnitBase: model.UnitBinary},
		func(e Event) { events = append(events, e) })
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got, want := recordNames(records), []string{"E:\\"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %#v", len(events), events)
	}
	if started, ok := events[0].(BuildStartedEvent); !ok || started.Count != 3 {
		t.Errorf("first event should be BuildStartedEvent{3}, got %#v", events[0])
	}
	if failed, ok := events[1].(DriveFailedEvent); !ok || failed.Name != "C:\\" {
		t.Errorf("second event should be DriveFailedEvent for C:, got %#v", events[1])
	}
	if _, ok := events[2].(RecordAddedEvent); !ok {
		t.Errorf("third event should be RecordAddedEvent, got %#v", events[2])
	}
	done, ok := events[3].(BuildCompletedEvent)
	if !ok {
		t.Fatalf("last event should be BuildCompletedEvent, got %#v", events[3])
	}
	if done.Failed != 1 || len(done.Records) != 1 {
		t.Errorf("unexpected completion %+v", done)
	}
}

func TestBuildEnumerationFailure(t *testing.T) {
	src := newFakeSource()
	src.listErr = &fs.PathError{Op: "open", Path: "/proc/mounts", Err: fs.ErrPermission}

	var events []Event
	records, err := Build(context.Background(), src, BuildOptions{}, func(e Event) { events = append(events, e) })
	if records != nil {
		t.Errorf("expected no records, got %v", records)
	}

	var enumErr *model.EnumerationError
	if !errors.As(err, &enumErr) {
		t.Fatalf("expected EnumerationError, got %v", err)
	}
	if enumErr.Class != model.FailurePermission || enumErr.Class.ExitCode() != 2 {
		t.Errorf("expected permission failure, got %v", enumErr.Class)
	}

	if len(events) != 1 {
		t.Fatalf("expected only BuildFailedEvent, got %#v", events)
	}
	if failed, ok := events[0].(BuildFailedEvent); !ok || failed.Err != enumErr {
		t.Errorf("unexpected event %#v", events[0])
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	src := newFakeSource()
	opts := BuildOptions{UnitBase: model.UnitBinary, IncludeNotReady: true}

	first, err := Build(context.Background(), src, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(context.Background(), src, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("rebuild produced different records:\n%v\n%v", first, second)
	}
}

func TestBuildUnitBase(t *testing.T) {
	src := newFakeSource()

	dec, _ := Build(context.Background(), src, BuildOptions{UnitBase: model.UnitDecimal}, nil)
	bin, _ := Build(context.Background(), src, BuildOptions{UnitBase: model.UnitBinary}, nil)

	for i := range dec {
		d, _ := dec[i].Metrics()
		b, _ := bin[i].Metrics()
		if b.TotalSize >= d.TotalSize || b.Free >= d.Free {
			t.Errorf("%s: binary sizes should be smaller (%+v vs %+v)", dec[i].Name, b, d)
		}
		if b.PercentFree != d.PercentFree {
			t.Errorf("%s: percent free changed with unit base", dec[i].Name)
		}
	}
}

func TestBuildZeroCapacity(t *testing.T) {
	src := &fakeSource{
		names: []string{"R:\\"},
		drives: map[string]model.Drive{
			"R:\\": {Name: "R:\\", Type: model.DriveRam, Ready: true},
		},
	}
	records, err := Build(context.Background(), src, BuildOptions{UnitBase: model.UnitBinary}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || !records[0].IsReady() {
		t.Fatalf("expected one ready record, got %+v", records)
	}
	if _, ok := records[0].Metrics(); ok {
		t.Error("zero-capacity drive should carry no metrics")
	}
}

func TestBuildEmptyEnumeration(t *testing.T) {
	src := &fakeSource{}
	records, err := Build(context.Background(), src, BuildOptions{}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, newFakeSource(), BuildOptions{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBuildSystemDrives(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("skipping Windows-specific test")
	}

	var failures []DriveFailedEvent
	records, err := Build(context.Background(), model.SystemSource(), BuildOptions{UnitBase: model.UnitBinary}, func(e Event) {
		if f, ok := e.(DriveFailedEvent); ok {
			failures = append(failures, f)
		}
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, f := range failures {
		t.Logf("drive %s failed: %v", f.Name, f.Err)
	}

	// C: should typically exist
	for _, r := range records {
		if r.Name != "C:\\" {
			continue
		}
		m, ok := r.Metrics()
		if !ok {
			t.Fatal("expected C: to be ready with a capacity")
		}
		if m.TotalSize <= 0 || m.PercentFree < 0 || m.PercentFree > 1 {
			t.Errorf("unexpected C: metrics %+v", m)
		}
		return
	}
	t.Error("expected C: drive to exist")
}
