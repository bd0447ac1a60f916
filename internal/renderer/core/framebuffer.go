package core

// Framebuffer is a fixed-size grid of 0xRRGGBB pixels stored row by row.
type Framebuffer struct {
	width  int
	height int
	pix    []uint32
}

// NewFramebuffer creates a black framebuffer.
// Negative dimensions are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Row returns the pixels of row y. The slice aliases the framebuffer.
// Out of range rows return nil.
func (f *Framebuffer) Row(y int) []uint32 {
	if y < 0 || y >= f.height {
		return nil
	}
	return f.pix[y*f.width : (y+1)*f.width : (y+1)*f.width]
}

// At returns the pixel at (x, y), or 0 when out of range.
func (f *Framebuffer) At(x, y int) Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return Color(f.pix[y*f.width+x])
}

// Pixels returns the whole backing store.
func (f *Framebuffer) Pixels() []uint32 {
	return f.pix
}
