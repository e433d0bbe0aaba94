package jpegbridge

import (
	"math"

	"github.com/ajroetker/go-highway/hwy"
)

// toneMapGamma is the exponent of the global HDR to LDR curve.
const toneMapGamma = 1 / 2.2

// hdrToLDR maps every half-precision bit pattern to an 8-bit display value.
// Entries for negative halves hold the value of their magnitude; clamping
// negatives to zero is the encoder's decision.
//
// The table is built once and never written afterwards.
var hdrToLDR = buildToneMap()

func buildToneMap() *[1 << 16]uint8 {
	var t [1 << 16]uint8
	for h := range 1 << 15 {
		v := toneMapValue(hwy.Float16ToFloat32(hwy.Float16(h)))
		t[h] = v
		t[h|0x8000] = v
	}
	return &t
}

// toneMapValue maps a non-negative linear sample in [0, 1] to [0, 255].
func toneMapValue(f float32) uint8 {
	switch {
	case math.IsNaN(float64(f)), f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(math.Round(255 * math.Pow(float64(f), toneMapGamma)))
}

// toneMapHalf maps a half-precision sample through the table.
func toneMapHalf(h uint16, clamp bool) uint8 {
	if clamp && h&0x8000 != 0 {
		return 0
	}
	return hdrToLDR[h]
}

// toneMapFloat converts a float sample to half precision and maps it
// through the table.
func toneMapFloat(f float32, clamp bool) uint8 {
	if clamp && f < 0 {
		return 0
	}
	return hdrToLDR[uint16(hwy.Float32ToFloat16(f))]
}
