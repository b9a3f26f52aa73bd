package bmp

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// rawBMP describes a bitmap file field by field, so tests can produce
// files this package would never write itself.
type rawBMP struct {
	signature   string
	width       int32
	height      int32
	bits        uint16
	compression uint32
	colorsUsed  uint32
	headerSize  uint32
	palette     []RGBQuad
	gap         int // bytes between palette and pixel data
	pixels      []byte
}

// Helper function to handle writing and potential errors
func writeBinary(t *testing.T, buf *bytes.Buffer, data interface{}) {
	t.Helper()
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		t.Fatalf("binary.Write failed: %v", err)
	}
}

func (f rawBMP) bytes(t *testing.T) []byte {
	t.Helper()
	if f.signature == "" {
		f.signature = "BM"
	}
	if f.headerSize == 0 {
		f.headerSize = infoHeaderLen
	}
	dataOffset := uint32(fileHeaderLen) + f.headerSize + uint32(len(f.palette)*quadLen+f.gap)
	fileSize := dataOffset + uint32(len(f.pixels))

	buf := new(bytes.Buffer)
	buf.WriteString(f.signature)
	writeBinary(t, buf, fileSize)
	writeBinary(t, buf, uint16(0)) // Reserved 1
	writeBinary(t, buf, uint16(0)) // Reserved 2
	writeBinary(t, buf, dataOffset)

	writeBinary(t, buf, f.headerSize)
	writeBinary(t, buf, f.width)
	writeBinary(t, buf, f.height)
	writeBinary(t, buf, uint16(1)) // Planes
	writeBinary(t, buf, f.bits)
	writeBinary(t, buf, f.compression)
	writeBinary(t, buf, uint32(len(f.pixels)))
	writeBinary(t, buf, int32(2835)) // X Pixels Per Meter (~72 DPI)
	writeBinary(t, buf, int32(2835)) // Y Pixels Per Meter
	writeBinary(t, buf, f.colorsUsed)
	writeBinary(t, buf, uint32(0)) // Important Colors
	if extra := int(f.headerSize) - infoHeaderLen; extra > 0 {
		buf.Write(make([]byte, extra))
	}

	writeBinary(t, buf, f.palette)
	buf.Write(make([]byte, f.gap))
	buf.Write(f.pixels)
	return buf.Bytes()
}
