package bmp

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Image returns a copy of b as an image.Image with its origin at the top
// left. 8-bit bitmaps become *image.Paletted, all others *image.NRGBA.
// The fourth byte of 32-bit pixels is treated as padding, so the result is opaque.
func (b *Bitmap) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.BytesPerPixel == 1 {
		pal := make(color.Palette, 256)
		for i := range pal {
			pal[i] = color.RGBA{A: 0xff}
		}
		for i, q := range b.Palette[:min(len(b.Palette), len(pal))] {
			pal[i] = color.RGBA{R: q.R, G: q.G, B: q.B, A: 0xff}
		}
		img := image.NewPaletted(rect, pal)
		for y := range b.Height {
			off := b.PixelOffset(0, y)
			copy(img.Pix[y*img.Stride:], b.Pix[off:off+b.Width])
		}
		return img
	}

	img := image.NewNRGBA(rect)
	for y := range b.Height {
		dst := img.Pix[y*img.Stride:]
		src := b.Pix[b.PixelOffset(0, y):]
		for x := range b.Width {
			s := src[x*b.BytesPerPixel:]
			d := dst[x*4 : x*4+4]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xff
		}
	}
	return img
}

// FromImage converts img into a top-down bitmap with the given number of
// bytes per pixel. 8-bit bitmaps can only be made from *image.Paletted
// (at most 256 colors) or *image.Gray images.
func FromImage(img image.Image, bytesPerPixel int) (*Bitmap, error) {
	bounds := img.Bounds()
	b, err := New(bounds.Dx(), bounds.Dy(), bytesPerPixel, 0)
	if err != nil {
		return nil, err
	}

	if bytesPerPixel == 1 {
		switch m := img.(type) {
		case *image.Paletted:
			if len(m.Palette) > 256 {
				return nil, fmt.Errorf("%w: %d palette colors", ErrUnsupportedFormat, len(m.Palette))
			}
			b.Palette = make([]RGBQuad, len(m.Palette))
			for i, c := range m.Palette {
				r, g, bl, _ := c.RGBA()
				b.Palette[i] = RGBQuad{B: uint8(bl >> 8), G: uint8(g >> 8), R: uint8(r >> 8)}
			}
			for y := range b.Height {
				start := m.PixOffset(bounds.Min.X, bounds.Min.Y+y)
				copy(b.Row(y), m.Pix[start:start+b.Width])
			}
		case *image.Gray:
			b.Palette = GrayscalePalette()
			for y := range b.Height {
				start := m.PixOffset(bounds.Min.X, bounds.Min.Y+y)
				copy(b.Row(y), m.Pix[start:start+b.Width])
			}
		default:
			return nil, fmt.Errorf("%w: cannot index a %T", ErrUnsupportedFormat, img)
		}
		return b, nil
	}

	src := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	draw.Draw(src, src.Bounds(), img, bounds.Min, draw.Src)
	for y := range b.Height {
		row := b.Row(y)
		s := src.Pix[y*src.Stride:]
		for x := range b.Width {
			d := row[x*bytesPerPixel:]
			d[0], d[1], d[2] = s[x*4+2], s[x*4+1], s[x*4]
			if bytesPerPixel == 4 {
				d[3] = s[x*4+3]
			}
		}
	}
	return b, nil
}
