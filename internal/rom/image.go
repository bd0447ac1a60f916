package rom

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyImage is returned when loading a file with no content.
var ErrEmptyImage = errors.New("rom: image is empty")

// Image is an immutable cartridge dump together with its layout.
type Image struct {
	data   []byte
	layout Layout
}

// New wraps data as an image. The slice must not be modified afterwards.
func New(data []byte) *Image {
	return &Image{
		data:   data,
		layout: NewLayout(ParseHeader(data)),
	}
}

// Load reads an image file from disk.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("load image %s: %w", path, ErrEmptyImage)
	}
	return New(data), nil
}

// Len returns the image size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Layout returns the image layout.
func (img *Image) Layout() Layout {
	return img.layout
}

// Bytes returns the raw image contents. Callers must not modify it.
func (img *Image) Bytes() []byte {
	return img.data
}

// At returns the byte at offset, or 0 when offset is out of range.
func (img *Image) At(offset int) byte {
	if offset < 0 || offset >= len(img.data) {
		return 0
	}
	return img.data[offset]
}

// Lookup returns the byte at offset and whether it exists.
func (img *Image) Lookup(offset int) (byte, bool) {
	if offset < 0 || offset >= len(img.data) {
		return 0, false
	}
	return img.data[offset], true
}

// Lines returns the number of display lines needed to show the image.
func (img *Image) Lines() int {
	if len(img.data) == 0 {
		return 0
	}
	return img.layout.LineForOffset(len(img.data)-1) + 1
}
