package bmp

import (
	"encoding/binary"
	"io"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	quadLen       = 4

	biRGB = 0
)

var signature = [2]byte{'B', 'M'}

// FileHeader is the BITMAPFILEHEADER that opens every bitmap file.
type FileHeader struct {
	Signature  [2]byte // BMP Signature (BM)
	FileSize   uint32  // Total file size
	Reserved1  uint16  // Reserved (0)
	Reserved2  uint16  // Reserved (0)
	DataOffset uint32  // Offset to image data
}

func (s *FileHeader) Read(r io.Reader) error {
	return readLE(r, s)
}

func (s *FileHeader) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, s)
}

// InfoHeader is the BITMAPINFOHEADER following the file header.
type InfoHeader struct {
	HeaderSize      uint32 // Size of the information header (40)
	Width           int32  // Image width
	Height          int32  // Image height, negative for top-down rows
	Planes          uint16 // Number of color planes (always 1)
	BitsPerPixel    uint16 // Bits per pixel (8, 24 or 32)
	Compression     uint32 // Compression method (0 for uncompressed)
	ImageSize       uint32 // Size of the raw pixel data (can be 0 for uncompressed)
	XPixelsPerMeter int32  // Horizontal resolution (pixels per meter)
	YPixelsPerMeter int32  // Vertical resolution (pixels per meter)
	ColorsUsed      uint32 // Number of colors in the color palette (0 means 256 for 8-bit)
	ImportantColors uint32 // Number of important colors (0 for all colors important)
}

func (s *InfoHeader) Read(r io.Reader) error {
	return readLE(r, s)
}

func (s *InfoHeader) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, s)
}

// RGBQuad is a single palette entry as stored in the file.
type RGBQuad struct {
	B, G, R, Reserved uint8
}

// readLE reads a fixed-size little endian value. A partial read is
// reported as io.ErrUnexpectedEOF, as is an empty one.
func readLE(r io.Reader, data interface{}) error {
	err := binary.Read(r, binary.LittleEndian, data)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// align4 rounds n up to the next multiple of four.
func align4(n int) int {
	return (n + 3) &^ 3
}
