package backend

import (
	"testing"

	"github.com/dshills/hexview/internal/renderer/core"
)

func TestSurfaceUploadSwap(t *testing.T) {
	s := NewSurface(3, 3)
	fb := filledFramebuffer(3, 3, 0xAABBCC)

	if n := s.Upload(fb, []bool{false, true}); n != 1 {
		t.Errorf("Upload() = %d rows, want 1", n)
	}
	if got := s.At(0, 1); got != 0 {
		t.Errorf("At(0, 1) before Swap = %v, want 0", got)
	}

	s.Swap()
	if got := s.At(2, 1); got != 0xAABBCC {
		t.Errorf("At(2, 1) = %v, want #AABBCC", got)
	}
	if got := s.At(0, 0); got != 0 {
		t.Errorf("At(0, 0) = %v, want 0", got)
	}

	changed := s.Changed()
	want := []bool{false, true, false}
	for y := range want {
		if changed[y] != want[y] {
			t.Errorf("Changed()[%d] = %v, want %v", y, changed[y], want[y])
		}
	}
	for y, c := range s.Changed() {
		if c {
			t.Errorf("second Changed()[%d] = true, want reset", y)
		}
	}
}

func TestSurfaceUploadAll(t *testing.T) {
	s := NewSurface(2, 2)
	if n := s.Upload(filledFramebuffer(2, 2, 1), nil); n != 2 {
		t.Errorf("Upload(nil) = %d rows, want 2", n)
	}
}

func TestSurfaceSizeMismatch(t *testing.T) {
	s := NewSurface(2, 2)
	fb := filledFramebuffer(4, 5, 0x010203)

	if n := s.Upload(fb, nil); n != 2 {
		t.Errorf("Upload() = %d rows, want 2", n)
	}
	s.Swap()
	if got := s.At(1, 1); got != 0x010203 {
		t.Errorf("At(1, 1) = %v, want #010203", got)
	}
	if got := s.At(2, 0); got != 0 {
		t.Errorf("At(2, 0) = %v, want 0 out of range", got)
	}
}

func TestSurfaceCopyRGBA(t *testing.T) {
	s := NewSurface(2, 1)
	fb := core.NewFramebuffer(2, 1)
	fb.Row(0)[0] = 0x102030
	fb.Row(0)[1] = 0xFFFFFF
	s.Upload(fb, nil)
	s.Swap()

	dst := make([]byte, 8)
	s.CopyRGBA(dst)
	want := []byte{0x10, 0x20, 0x30, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %#x, want %#x", i, dst[i], want[i])
		}
	}

	// short destination is filled as far as it goes
	short := make([]byte, 5)
	s.CopyRGBA(short)
	if short[0] != 0x10 {
		t.Errorf("short[0] = %#x, want 0x10", short[0])
	}
}
