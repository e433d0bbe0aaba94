package jpegbridge

import (
	"encoding/binary"
	"math"
)

// pixelEncoder converts in-memory samples into the destination byte layout.
type pixelEncoder struct {
	sampleType PixelType
	order      binary.ByteOrder
	toneMap    bool // map HDR samples to one LDR byte
	clamp      bool // negative HDR samples map to zero
}

func newPixelEncoder(t PixelType, bigEndian, toneMap, clamp bool) pixelEncoder {
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}
	return pixelEncoder{sampleType: t, order: order, toneMap: toneMap, clamp: clamp}
}

// size returns the number of destination bytes written per sample.
func (e pixelEncoder) size() int {
	if e.toneMap && e.sampleType != PixelUByte {
		return 1
	}
	return e.sampleType.Size()
}

// putUint8 writes an 8-bit sample verbatim.
func (e pixelEncoder) putUint8(dst []byte, v uint8) int {
	dst[0] = v
	return 1
}

// putUint16 writes a 16-bit sample, or its tone-mapped byte when the word
// holds a half-precision value.
func (e pixelEncoder) putUint16(dst []byte, v uint16) int {
	if e.toneMap {
		dst[0] = toneMapHalf(v, e.clamp)
		return 1
	}
	e.order.PutUint16(dst, v)
	return 2
}

// putFloat32 writes the IEEE-754 bit pattern of f, or its tone-mapped byte.
// Only the byte order varies; the bits are those of the in-memory value.
func (e pixelEncoder) putFloat32(dst []byte, f float32) int {
	if e.toneMap {
		dst[0] = toneMapFloat(f, e.clamp)
		return 1
	}
	e.order.PutUint32(dst, math.Float32bits(f))
	return 4
}
