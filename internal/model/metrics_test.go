package model

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestComputeMetricsDecimal(t *testing.T) {
	m, ok := ComputeMetrics(500_000_000_000, 125_000_000_000, UnitDecimal)
	if !ok {
		t.Fatal("expected metrics for a non-zero capacity")
	}
	if m.TotalSize != 500.0 {
		t.Errorf("expected total 500.0, got %v", m.TotalSize)
	}
	if m.Free != 125.0 {
		t.Errorf("expected free 125.0, got %v", m.Free)
	}
	if m.PercentFree != 0.25 {
		t.Errorf("expected 0.25 free, got %v", m.PercentFree)
	}
}

func TestComputeMetricsBinary(t *testing.T) {
	m, ok := ComputeMetrics(500_000_000_000, 125_000_000_000, UnitBinary)
	if !ok {
		t.Fatal("expected metrics for a non-zero capacity")
	}
	if !approx(m.TotalSize, 465.66) {
		t.Errorf("expected total ~465.66, got %v", m.TotalSize)
	}
	if !approx(m.Free, 116.42) {
		t.Errorf("expected free ~116.42, got %v", m.Free)
	}
	if m.PercentFree != 0.25 {
		t.Errorf("expected 0.25 free, got %v", m.PercentFree)
	}
}

func TestComputeMetricsZeroTotal(t *testing.T) {
	m, ok := ComputeMetrics(0, 0, UnitDecimal)
	if ok {
		t.Fatal("expected no metrics for zero capacity")
	}
	if math.IsNaN(m.PercentFree) {
		t.Error("percent free leaked NaN")
	}
}

func TestComputeMetricsLargeCounts(t *testing.T) {
	total := uint64(1) << 62
	m, ok := ComputeMetrics(total, total/2, UnitBinary)
	if !ok {
		t.Fatal("expected metrics")
	}
	if m.PercentFree != 0.5 {
		t.Errorf("expected 0.5, got %v", m.PercentFree)
	}
	if m.TotalSize != float64(total)/(1024*1024*1024) {
		t.Errorf("unexpected total %v", m.TotalSize)
	}
}

func TestPercentFreeInRange(t *testing.T) {
	totals := []uint64{1, 7, 1000, 999_999_999_999, 1 << 40, math.MaxInt64}
	for _, total := range totals {
		for _, free := range []uint64{0, total / 3, total / 2, total} {
			m, ok := ComputeMetrics(total, free, UnitDecimal)
			if !ok {
				t.Fatalf("expected metrics for total=%d", total)
			}
			if m.PercentFree < 0 || m.PercentFree > 1 {
				t.Errorf("total=%d free=%d: percent %v out of range", total, free, m.PercentFree)
			}
		}
	}
}

func TestBinaryBaseShrinksSizes(t *testing.T) {
	cases := [][2]uint64{
		{500_000_000_000, 125_000_000_000},
		{1 << 30, 1 << 29},
		{4_000_000_000_000, 1},
	}
	for _, c := range cases {
		dec, _ := ComputeMetrics(c[0], c[1], UnitDecimal)
		bin, _ := ComputeMetrics(c[0], c[1], UnitBinary)
		if !(bin.TotalSize < dec.TotalSize) {
			t.Errorf("total=%d: GiB %v should be below GB %v", c[0], bin.TotalSize, dec.TotalSize)
		}
		if !(bin.Free < dec.Free) {
			t.Errorf("free=%d: GiB %v should be below GB %v", c[1], bin.Free, dec.Free)
		}
		if bin.PercentFree != dec.PercentFree {
			t.Errorf("percent free changed with unit base: %v vs %v", bin.PercentFree, dec.PercentFree)
		}
	}
}

func TestUnitBase(t *testing.T) {
	if UnitDecimal.Suffix() != "GB" || UnitBinary.Suffix() != "GiB" {
		t.Error("unexpected unit suffixes")
	}
	if UnitDecimal.Toggle() != UnitBinary || UnitBinary.Toggle() != UnitDecimal {
		t.Error("toggle should swap bases")
	}
	if UnitBase(512).Valid() {
		t.Error("512 should not be a valid base")
	}

	b, err := ParseUnitBase("1000")
	if err != nil || b != UnitDecimal {
		t.Errorf("ParseUnitBase(1000) = %v, %v", b, err)
	}
	b, err = ParseUnitBase("gib")
	if err != nil || b != UnitBinary {
		t.Errorf("ParseUnitBase(gib) = %v, %v", b, err)
	}
	if _, err := ParseUnitBase("2048"); err == nil {
		t.Error("expected error for 2048")
	}
}
