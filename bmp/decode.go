package bmp

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Decode reads a bitmap from r.
//
// Only uncompressed bitmaps with 8, 24 or 32 bits per pixel are accepted.
// The returned bitmap always stores its rows top to bottom. Nothing is
// returned unless the headers, the palette and every pixel row were read
// completely.
func Decode(r io.ReadSeeker) (*Bitmap, error) {
	var fh FileHeader
	if err := fh.Read(r); err != nil {
		return nil, fmt.Errorf("bmp: reading file header: %w", err)
	}
	if fh.Signature != signature {
		return nil, fmt.Errorf("%w: signature %q", ErrInvalidFormat, fh.Signature[:])
	}

	var ih InfoHeader
	if err := ih.Read(r); err != nil {
		return nil, fmt.Errorf("bmp: reading info header: %w", err)
	}
	if ih.HeaderSize < infoHeaderLen {
		return nil, fmt.Errorf("%w: info header of %d bytes", ErrUnsupportedFormat, ih.HeaderSize)
	}
	if ih.Compression != biRGB {
		return nil, fmt.Errorf("%w: compression %d", ErrUnsupportedFormat, ih.Compression)
	}
	switch ih.BitsPerPixel {
	case 8, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, ih.BitsPerPixel)
	}
	if ih.Width < 0 {
		return nil, fmt.Errorf("%w: negative width %d", ErrInvalidFormat, ih.Width)
	}

	height := int(ih.Height)
	topDown := height < 0
	if topDown {
		height = -height
	}
	b, err := alloc(int(ih.Width), height, int(ih.BitsPerPixel/8))
	if err != nil {
		return nil, err
	}

	if b.BytesPerPixel == 1 {
		colors := int(ih.ColorsUsed)
		if colors == 0 {
			colors = 256
		}
		if colors > 256 {
			return nil, fmt.Errorf("%w: %d palette entries", ErrInvalidFormat, colors)
		}
		// V4 and V5 headers are longer; the palette follows the whole header.
		if extra := int64(ih.HeaderSize) - infoHeaderLen; extra > 0 {
			if _, err := r.Seek(extra, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("bmp: skipping info header: %w", err)
			}
		}
		b.Palette = make([]RGBQuad, colors)
		if err := readLE(r, b.Palette); err != nil {
			return nil, fmt.Errorf("bmp: reading palette: %w", err)
		}
	}

	if _, err := r.Seek(int64(fh.DataOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("bmp: seeking to pixel data: %w", err)
	}
	if b.Stride == 0 {
		return b, nil
	}
	for i := range height {
		y := height - 1 - i
		if topDown {
			y = i
		}
		row := b.Pix[y*b.Stride : (y+1)*b.Stride]
		if _, err := io.ReadFull(r, row); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("bmp: reading pixel row %d: %w", i, err)
		}
	}
	return b, nil
}

// Load reads the whole file into memory and decodes it.
// A missing file can be detected with errors.Is(err, fs.ErrNotExist).
func Load(filename string) (*Bitmap, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	b, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return b, nil
}
