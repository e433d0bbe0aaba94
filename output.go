package jpegbridge

import (
	"fmt"
	"math"
)

// outputDescriptor configures the output side of one decode call.
type outputDescriptor struct {
	dst    *byteCursor
	width  int
	height int
	depth  int

	// sampleType and enc are derived once from the image information and
	// never re-derived during the decode.
	sampleType PixelType
	enc        pixelEncoder

	noColorTransform bool
	upsampled        bool
	alpha            bool // never set: no alpha target is wired
}

// newOutputDescriptor derives the sample layout for info. Samples wider than
// eight bits are stored as words; float images stay float only when the
// engine does not convert them for output. Tone mapping applies to float
// images only.
func newOutputDescriptor(dst *byteCursor, info ImageInfo, ct ColorTransform, o *Options) *outputDescriptor {
	t := PixelUByte
	if info.Precision > 8 {
		t = PixelUWord
	}
	if info.Float && !info.OutputConversion {
		t = PixelFloat
	}
	toneMap := o.ToneMap && info.Float
	return &outputDescriptor{
		dst:              dst,
		width:            info.Width,
		height:           info.Height,
		depth:            info.Depth,
		sampleType:       t,
		enc:              newPixelEncoder(t, true, toneMap, o.Clamp),
		noColorTransform: ct == ColorTransformNone,
		upsampled:        !o.DisableUpsampling,
	}
}

// sampleBytes returns the size of one sample in scratch memory.
func (d *outputDescriptor) sampleBytes() int {
	return d.sampleType.Size()
}

// outputBytes returns the size of one sample in the destination.
func (d *outputDescriptor) outputBytes() int {
	return d.enc.size()
}

// expectedLength returns the destination size the image requires, or false
// if it overflows int.
func (d *outputDescriptor) expectedLength() (int, bool) {
	return mulChecked(d.width, d.height, d.depth, d.outputBytes())
}

// scratchSamples returns the number of samples in one full stripe.
func (d *outputDescriptor) scratchSamples() (int, bool) {
	return mulChecked(d.width, stripeRows, d.depth)
}

// outputBridge hands stripe memory to the engine and, once the last
// component of a stripe is released, drains the stripe into the
// destination.
type outputBridge struct {
	desc *outputDescriptor
	mem  *scratch

	open   uint64 // one bit per component currently requested
	rows   int    // valid rows of the current stripe
	row    []byte // one encoded destination row
	drains int
}

func newOutputBridge(desc *outputDescriptor, mem *scratch) *outputBridge {
	return &outputBridge{
		desc: desc,
		mem:  mem,
		row:  make([]byte, desc.width*desc.depth*desc.outputBytes()),
	}
}

// Bitmap implements BitmapHook. Requesting an open component or releasing
// a closed one is a contract violation between bridge and engine and
// panics.
func (b *outputBridge) Bitmap(req *BitmapRequest) {
	c := req.Component
	if c < 0 || c >= b.desc.depth {
		panic(fmt.Sprintf("jpegbridge: %s of component %d, image has %d", req.Action, c, b.desc.depth))
	}
	bit := uint64(1) << uint(c)

	switch req.Action {
	case ActionRequest:
		if b.open&bit != 0 {
			panic(fmt.Sprintf("jpegbridge: component %d requested twice", c))
		}
		b.open |= bit
		req.Window = b.window(c, req.MinY, req.MaxY)

	case ActionRelease:
		if b.open&bit == 0 {
			panic(fmt.Sprintf("jpegbridge: component %d released but not requested", c))
		}
		b.open &^= bit
		if c == b.desc.depth-1 {
			b.drain()
		}

	default:
		panic(fmt.Sprintf("jpegbridge: unknown bitmap action %s", req.Action))
	}
}

// window computes the memory window of component c for rows minY..maxY,
// clipped to the image bottom and to the stripe height.
func (b *outputBridge) window(c, minY, maxY int) *Window {
	d := b.desc
	maxY = min(maxY, d.height-1, minY+stripeRows-1)
	rows := max(maxY-minY+1, 0)
	b.rows = rows

	size := d.sampleBytes()
	return &Window{
		Width:         d.width,
		Height:        rows,
		MinY:          minY,
		BytesPerPixel: d.depth * size,
		BytesPerRow:   d.width * d.depth * size,
		PixelType:     d.sampleType,
		base:          c,
		pixelStride:   d.depth,
		rowStride:     d.width * d.depth,
		mem:           b.mem,
	}
}

// drain encodes the valid rows of the stripe, interleaved and row-major,
// into the destination. Bytes past the end of the destination are dropped.
func (b *outputBridge) drain() {
	b.drains++
	d := b.desc
	enc := d.enc
	n := d.width * d.depth
	for y := range b.rows {
		off := y * n
		w := 0
		switch d.sampleType {
		case PixelUByte:
			for _, v := range b.mem.u8[off : off+n] {
				w += enc.putUint8(b.row[w:], v)
			}
		case PixelUWord:
			for _, v := range b.mem.u16[off : off+n] {
				w += enc.putUint16(b.row[w:], v)
			}
		case PixelFloat:
			for _, v := range b.mem.f32[off : off+n] {
				w += enc.putFloat32(b.row[w:], v)
			}
		}
		if d.dst.Write(b.row[:w]) < w {
			return
		}
	}
}

// mulChecked multiplies non-negative factors, reporting false on overflow.
func mulChecked(factors ...int) (int, bool) {
	p := 1
	for _, f := range factors {
		if f < 0 {
			return 0, false
		}
		if f != 0 && p > math.MaxInt/f {
			return 0, false
		}
		p *= f
	}
	return p, true
}
