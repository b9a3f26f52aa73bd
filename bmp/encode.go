package bmp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Encode writes b to w as an uncompressed bitmap.
//
// Rows are written in memory order. The sign of the height field records
// that order: negative (top-down) for ordinary bitmaps, positive when
// b.BottomUp is set. Row padding is always zero.
func Encode(w io.Writer, b *Bitmap) error {
	if err := checkEncodable(b); err != nil {
		return err
	}

	var paletteLen int
	if b.BytesPerPixel == 1 {
		paletteLen = len(b.Palette) * quadLen
	}
	headerLen := align4(fileHeaderLen + infoHeaderLen + paletteLen)
	fileStride := align4(b.Width * b.BytesPerPixel)
	dataLen := fileStride * b.Height
	if int64(headerLen)+int64(dataLen) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes of pixel data", ErrAllocation, dataLen)
	}

	height := int32(b.Height)
	if !b.BottomUp {
		height = -height
	}
	colorsUsed := uint32(len(b.Palette))
	if b.BytesPerPixel != 1 || colorsUsed == 256 {
		colorsUsed = 0
	}

	fh := FileHeader{
		Signature:  signature,
		FileSize:   uint32(headerLen + dataLen),
		DataOffset: uint32(headerLen),
	}
	if err := fh.Write(w); err != nil {
		return fmt.Errorf("bmp: writing file header: %w", err)
	}
	ih := InfoHeader{
		HeaderSize:   infoHeaderLen,
		Width:        int32(b.Width),
		Height:       height,
		Planes:       1,
		BitsPerPixel: uint16(b.BytesPerPixel * 8),
		Compression:  biRGB,
		ImageSize:    uint32(dataLen),
		ColorsUsed:   colorsUsed,
	}
	if err := ih.Write(w); err != nil {
		return fmt.Errorf("bmp: writing info header: %w", err)
	}
	if paletteLen > 0 {
		if err := binary.Write(w, binary.LittleEndian, b.Palette); err != nil {
			return fmt.Errorf("bmp: writing palette: %w", err)
		}
	}

	gap := headerLen - (fileHeaderLen + infoHeaderLen + paletteLen)
	pad := make([]byte, max(gap, fileStride))
	if gap > 0 {
		if _, err := w.Write(pad[:gap]); err != nil {
			return fmt.Errorf("bmp: writing header padding: %w", err)
		}
	}

	if fileStride == 0 {
		return nil
	}
	n := min(b.Stride, fileStride)
	for y := range b.Height {
		start := y * b.Stride
		if _, err := w.Write(b.Pix[start : start+n]); err != nil {
			return fmt.Errorf("bmp: writing pixel row %d: %w", y, err)
		}
		if n < fileStride {
			if _, err := w.Write(pad[:fileStride-n]); err != nil {
				return fmt.Errorf("bmp: writing pixel row %d: %w", y, err)
			}
		}
	}
	return nil
}

func checkEncodable(b *Bitmap) error {
	if !validDepth(b.BytesPerPixel) {
		return fmt.Errorf("%w: %d bytes per pixel", ErrUnsupportedFormat, b.BytesPerPixel)
	}
	if b.Width < 0 || b.Height < 0 || b.Width > math.MaxInt32 || b.Height > math.MaxInt32 {
		return fmt.Errorf("bmp: invalid dimensions %dx%d", b.Width, b.Height)
	}
	rowLen := b.Width * b.BytesPerPixel
	if b.Stride < rowLen {
		return fmt.Errorf("bmp: stride %d shorter than a row of %d bytes", b.Stride, rowLen)
	}
	if b.Height > 0 && len(b.Pix) < (b.Height-1)*b.Stride+rowLen {
		return fmt.Errorf("bmp: pixel buffer holds %d bytes, need %d", len(b.Pix), (b.Height-1)*b.Stride+rowLen)
	}
	if b.BytesPerPixel == 1 && (len(b.Palette) == 0 || len(b.Palette) > 256) {
		return fmt.Errorf("bmp: 8-bit bitmap needs 1 to 256 palette entries, has %d", len(b.Palette))
	}
	return nil
}

// Save encodes b into the named file. The file is created or truncated;
// it may be left incomplete if writing fails.
func (b *Bitmap) Save(filename string) (err error) {
	if err := checkEncodable(b); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := Encode(w, b); err != nil {
		return err
	}
	return w.Flush()
}

// SaveRaw writes caller-owned pixel data without first building a Bitmap.
//
// The stride may be any value of at least width*bytesPerPixel; rows are
// padded with zeros to the aligned file stride. A negative height marks
// pix as holding its rows bottom to top.
func SaveRaw(filename string, width, height, bytesPerPixel, stride int, pix []byte, palette []RGBQuad) error {
	b := &Bitmap{
		Width:         width,
		Height:        height,
		BytesPerPixel: bytesPerPixel,
		Stride:        stride,
		Pix:           pix,
		Palette:       palette,
	}
	if height < 0 {
		b.Height = -height
		b.BottomUp = true
	}
	return b.Save(filename)
}
