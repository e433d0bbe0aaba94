package jpegbridge

import "fmt"

// stripeRows is the height of one stripe.
const stripeRows = 8

// scratch is the stripe memory shared by all components of one stripe.
// Exactly one of the sample slices is allocated, matching typ. Samples are
// interleaved: (x, y, c) lives at y*width*depth + x*depth + c.
type scratch struct {
	typ PixelType
	u8  []uint8
	u16 []uint16
	f32 []float32
}

// newScratch allocates room for n samples of type typ.
func newScratch(typ PixelType, n int) *scratch {
	s := &scratch{typ: typ}
	switch typ {
	case PixelUByte:
		s.u8 = make([]uint8, n)
	case PixelUWord:
		s.u16 = make([]uint16, n)
	case PixelFloat:
		s.f32 = make([]float32, n)
	}
	return s
}

// Window is the part of the stripe memory one component may fill between a
// request and its release. Rows are addressed by absolute image y; valid
// rows are MinY through MinY+Height-1.
type Window struct {
	Width         int
	Height        int
	MinY          int
	BytesPerPixel int
	BytesPerRow   int
	PixelType     PixelType

	base        int // index of (0, MinY) for this component
	pixelStride int
	rowStride   int
	mem         *scratch
}

// Index returns the position of sample (x, y) in the stripe memory. It
// panics if (x, y) lies outside the window.
func (w *Window) Index(x, y int) int {
	if x < 0 || x >= w.Width || y < w.MinY || y >= w.MinY+w.Height {
		panic(fmt.Sprintf("jpegbridge: sample (%d, %d) outside window %dx%d at row %d",
			x, y, w.Width, w.Height, w.MinY))
	}
	return w.base + (y-w.MinY)*w.rowStride + x*w.pixelStride
}

func (w *Window) mustBe(t PixelType) {
	if w.PixelType != t {
		panic(fmt.Sprintf("jpegbridge: %s access to a %s window", t, w.PixelType))
	}
}

// SetUint8 stores an 8-bit sample.
func (w *Window) SetUint8(x, y int, v uint8) {
	w.mustBe(PixelUByte)
	w.mem.u8[w.Index(x, y)] = v
}

// SetUint16 stores a 16-bit sample.
func (w *Window) SetUint16(x, y int, v uint16) {
	w.mustBe(PixelUWord)
	w.mem.u16[w.Index(x, y)] = v
}

// SetFloat32 stores a floating point sample.
func (w *Window) SetFloat32(x, y int, v float32) {
	w.mustBe(PixelFloat)
	w.mem.f32[w.Index(x, y)] = v
}

// Uint8At returns an 8-bit sample.
func (w *Window) Uint8At(x, y int) uint8 {
	w.mustBe(PixelUByte)
	return w.mem.u8[w.Index(x, y)]
}

// Uint16At returns a 16-bit sample.
func (w *Window) Uint16At(x, y int) uint16 {
	w.mustBe(PixelUWord)
	return w.mem.u16[w.Index(x, y)]
}

// Float32At returns a floating point sample.
func (w *Window) Float32At(x, y int) float32 {
	w.mustBe(PixelFloat)
	return w.mem.f32[w.Index(x, y)]
}
