package dirty

import "testing"

func TestNewLineRegion(t *testing.T) {
	r := NewLineRegion(10, 5)
	if r.StartLine != 5 || r.EndLine != 10 {
		t.Errorf("NewLineRegion(10, 5) = %+v, want 5..10", r)
	}
	if r.LineCount() != 6 {
		t.Errorf("LineCount() = %d, want 6", r.LineCount())
	}
}

func TestRegionIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   bool
	}{
		{"single", NewSingleLine(3), false},
		{"range", NewLineRegion(0, 15), false},
		{"inverted", Region{StartLine: 4, EndLine: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegionOverlaps(t *testing.T) {
	a := NewLineRegion(0, 15)
	b := NewLineRegion(15, 30)
	c := NewLineRegion(16, 30)

	if !a.Overlaps(b) {
		t.Error("regions sharing line 15 should overlap")
	}
	if a.Overlaps(c) {
		t.Error("disjoint regions should not overlap")
	}
	if a.Overlaps(Region{StartLine: 5, EndLine: 4}) {
		t.Error("empty region should not overlap")
	}
}

func TestRegionClip(t *testing.T) {
	r := NewLineRegion(-4, 500).Clip(480)
	if r.StartLine != 0 || r.EndLine != 479 {
		t.Errorf("Clip() = %+v, want 0..479", r)
	}
	if !NewLineRegion(480, 490).Clip(480).IsEmpty() {
		t.Error("region below the screen should clip to empty")
	}
	if !r.ContainsLine(0) || r.ContainsLine(480) {
		t.Error("ContainsLine mismatch after clip")
	}
}
