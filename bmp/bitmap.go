// Package bmp reads and writes uncompressed Windows bitmaps with 8, 24 or
// 32 bits per pixel.
package bmp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when the input does not carry the BM signature.
	ErrInvalidFormat = errors.New("bmp: invalid format")
	// ErrUnsupportedFormat is returned for valid bitmaps using a compression
	// mode or bit depth this package does not handle.
	ErrUnsupportedFormat = errors.New("bmp: unsupported format")
	// ErrAllocation is returned when a pixel buffer would exceed MaxPixelBytes.
	ErrAllocation = errors.New("bmp: pixel buffer too large")
)

// MaxPixelBytes bounds the pixel buffer of a single bitmap, so that a
// corrupted header cannot make the decoder allocate arbitrary amounts of memory.
const MaxPixelBytes = 1 << 30

// Bitmap is an uncompressed image held in a single pixel buffer.
//
// Rows are Stride bytes apart and stored top to bottom unless BottomUp is
// set. Pixels use the file's byte order: an index for 8-bit bitmaps, B G R
// for 24-bit and B G R X for 32-bit ones.
type Bitmap struct {
	Width         int
	Height        int
	BytesPerPixel int
	Stride        int
	BottomUp      bool
	Pix           []byte
	Palette       []RGBQuad // only for BytesPerPixel == 1
}

// New allocates a zeroed bitmap.
//
// A negative height creates a bitmap whose rows are stored bottom to top.
// A palette of colors entries is allocated for 8-bit bitmaps; colors must
// be between 0 and 256 and is ignored for other depths.
func New(width, height, bytesPerPixel, colors int) (*Bitmap, error) {
	bottomUp := false
	if height < 0 {
		height = -height
		bottomUp = true
	}
	if width < 0 {
		return nil, fmt.Errorf("bmp: negative width %d", width)
	}
	if !validDepth(bytesPerPixel) {
		return nil, fmt.Errorf("%w: %d bytes per pixel", ErrUnsupportedFormat, bytesPerPixel)
	}
	if colors < 0 || colors > 256 {
		return nil, fmt.Errorf("bmp: invalid palette size %d", colors)
	}

	b, err := alloc(width, height, bytesPerPixel)
	if err != nil {
		return nil, err
	}
	b.BottomUp = bottomUp
	if bytesPerPixel == 1 && colors > 0 {
		b.Palette = make([]RGBQuad, colors)
	}
	return b, nil
}

// alloc creates the pixel buffer for a bitmap of the given geometry.
func alloc(width, height, bytesPerPixel int) (*Bitmap, error) {
	stride := align4(width * bytesPerPixel)
	if height > 0 && stride > MaxPixelBytes/height {
		return nil, fmt.Errorf("%w: %dx%d at %d bytes per pixel", ErrAllocation, width, height, bytesPerPixel)
	}
	return &Bitmap{
		Width:         width,
		Height:        height,
		BytesPerPixel: bytesPerPixel,
		Stride:        stride,
		Pix:           make([]byte, stride*height),
	}, nil
}

// Release drops the pixel buffer and the palette. The bitmap is empty afterwards.
func (b *Bitmap) Release() {
	b.Pix = nil
	b.Palette = nil
	b.Width, b.Height, b.Stride = 0, 0, 0
}

// Row returns the bytes of row y as stored in memory, without padding.
func (b *Bitmap) Row(y int) []byte {
	start := y * b.Stride
	return b.Pix[start : start+b.Width*b.BytesPerPixel]
}

// PixelOffset returns the index into Pix of the first byte of pixel (x, y),
// where y counts from the top of the image regardless of the row order.
func (b *Bitmap) PixelOffset(x, y int) int {
	if b.BottomUp {
		y = b.Height - 1 - y
	}
	return y*b.Stride + x*b.BytesPerPixel
}

// GrayscalePalette returns a 256 entry palette mapping each index to the
// gray level of the same value.
func GrayscalePalette() []RGBQuad {
	pal := make([]RGBQuad, 256)
	for i := range pal {
		v := uint8(i)
		pal[i] = RGBQuad{B: v, G: v, R: v}
	}
	return pal
}

func validDepth(bytesPerPixel int) bool {
	switch bytesPerPixel {
	case 1, 3, 4:
		return true
	}
	return false
}
