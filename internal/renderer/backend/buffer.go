package backend

import (
	"sync"

	"github.com/dshills/hexview/internal/renderer/core"
)

// Surface provides double-buffered pixel storage with row change tracking.
// Upload writes into the back buffer; Swap publishes the uploaded rows to
// the front buffer, which is what a display reads.
//
// Surface is safe for use by one writer and any number of readers.
type Surface struct {
	mu            sync.RWMutex
	width, height int
	back          []uint32
	front         []uint32
	uploaded      []bool
	changed       []bool
}

// NewSurface creates a black surface of the given size.
func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		width:    width,
		height:   height,
		back:     make([]uint32, width*height),
		front:    make([]uint32, width*height),
		uploaded: make([]bool, height),
		changed:  make([]bool, height),
	}
}

// Size returns the surface dimensions.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Upload copies the rows flagged in rows from fb into the back buffer and
// returns the number of rows copied. A nil rows slice copies every row.
// Rows and columns beyond either size are ignored.
func (s *Surface) Upload(fb *core.Framebuffer, rows []bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := min(s.height, fb.Height())
	w := min(s.width, fb.Width())
	n := 0
	for y := 0; y < h; y++ {
		if rows != nil && (y >= len(rows) || !rows[y]) {
			continue
		}
		copy(s.back[y*s.width:y*s.width+w], fb.Row(y)[:w])
		s.uploaded[y] = true
		n++
	}
	return n
}

// Swap publishes uploaded rows to the front buffer. The rows are
// remembered as changed until the next call to Changed.
func (s *Surface) Swap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for y, up := range s.uploaded {
		if !up {
			continue
		}
		copy(s.front[y*s.width:(y+1)*s.width], s.back[y*s.width:(y+1)*s.width])
		s.uploaded[y] = false
		s.changed[y] = true
	}
}

// Changed returns the rows published since the last call and resets them.
func (s *Surface) Changed() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]bool, len(s.changed))
	copy(out, s.changed)
	clear(s.changed)
	return out
}

// At returns the front pixel at (x, y), or 0 when out of range.
func (s *Surface) At(x, y int) core.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0
	}
	return core.Color(s.front[y*s.width+x])
}

// CopyRGBA writes the front buffer into dst as 8-bit RGBA, opaque.
// dst must hold at least width*height*4 bytes.
func (s *Surface) CopyRGBA(dst []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, p := range s.front {
		o := i * 4
		if o+3 >= len(dst) {
			return
		}
		dst[o] = byte(p >> 16)
		dst[o+1] = byte(p >> 8)
		dst[o+2] = byte(p)
		dst[o+3] = 0xFF
	}
}
