package present

import (
	"testing"
	"time"
)

func TestDetectorUnchangedRowNotPending(t *testing.T) {
	d := NewDetector(4, nil)
	row := []uint32{1, 2, 3}

	changed := d.Render(2, row, func() {
		row[0], row[1], row[2] = 1, 2, 3
	})
	if changed {
		t.Error("identical render reported a change")
	}
	if d.Any() {
		t.Error("no row should be pending")
	}
}

func TestDetectorChangedRowPending(t *testing.T) {
	d := NewDetector(4, nil)
	row := []uint32{1, 2, 3}

	changed := d.Render(1, row, func() { row[1] = 0xFF556B })
	if !changed {
		t.Error("modified render reported no change")
	}
	if !d.Pending()[1] || d.Count() != 1 {
		t.Errorf("Pending() = %v, want only row 1", d.Pending())
	}

	// re-rendering the same content leaves the bitmap untouched
	d.Clear()
	d.Render(1, row, func() { row[1] = 0xFF556B })
	if d.Any() {
		t.Error("second identical render should not be pending")
	}
}

func TestDetectorCustomChecksum(t *testing.T) {
	calls := 0
	d := NewDetector(1, func(b []byte) uint32 {
		calls++
		return uint32(len(b))
	})
	row := make([]uint32, 8)

	if d.Render(0, row, func() { row[0] = 7 }) {
		t.Error("constant checksum should hide the change")
	}
	if calls != 2 {
		t.Errorf("checksum called %d times, want 2", calls)
	}
}

func TestDetectorMarkAll(t *testing.T) {
	d := NewDetector(3, nil)
	d.Mark(5)
	if d.Any() {
		t.Error("out of range Mark should be ignored")
	}
	d.MarkAll()
	if d.Count() != 3 {
		t.Errorf("Count() = %d, want 3", d.Count())
	}
	d.Clear()
	if d.Any() {
		t.Error("Clear should reset the bitmap")
	}
}

func TestPolicy(t *testing.T) {
	start := time.Unix(1000, 0)
	p := NewPolicy(200*time.Millisecond, start)

	if p.Due(true, start.Add(time.Second)) {
		t.Error("flush due before anything was rendered")
	}

	p.Rendered()
	if p.Due(false, start.Add(100*time.Millisecond)) {
		t.Error("flush due before the interval elapsed")
	}
	if !p.Due(true, start.Add(100*time.Millisecond)) {
		t.Error("flush should be due once clean")
	}
	if !p.Due(false, start.Add(201*time.Millisecond)) {
		t.Error("flush should be due after the interval")
	}

	p.Flushed(start.Add(300 * time.Millisecond))
	if p.Due(true, start.Add(time.Second)) {
		t.Error("flush due right after flushing with nothing new")
	}
}
