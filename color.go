package jpegbridge

import (
	"image"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
)

// stripePlanes holds the 8-bit samples of one stripe, one row-major plane
// per component.
type stripePlanes struct {
	width  int
	rows   int
	planes [][]uint8
}

// reset sizes p for depth planes of width x rows samples, reusing memory.
func (p *stripePlanes) reset(depth, width, rows int) {
	p.width, p.rows = width, rows
	if len(p.planes) != depth {
		p.planes = make([][]uint8, depth)
	}
	n := width * rows
	for c := range p.planes {
		if cap(p.planes[c]) < n {
			p.planes[c] = make([]uint8, n)
		}
		p.planes[c] = p.planes[c][:n]
	}
}

// at returns the sample of component c at column x of stripe row r.
func (p *stripePlanes) at(c, x, r int) uint8 {
	return p.planes[c][r*p.width+x]
}

// extractStripe copies rows minY..minY+rows-1 of img into p, applying the
// inverse colour transformation ct to YCbCr frames. RGB and grey frames are
// delivered as decoded.
func extractStripe(img image.Image, minY, rows int, ct ColorTransform, p *stripePlanes) error {
	b := img.Bounds()
	switch m := img.(type) {
	case *image.Gray:
		p.reset(1, b.Dx(), rows)
		for r := range rows {
			off := m.PixOffset(b.Min.X, b.Min.Y+minY+r)
			copy(p.planes[0][r*p.width:(r+1)*p.width], m.Pix[off:off+p.width])
		}
		return nil

	case *image.YCbCr:
		p.reset(3, b.Dx(), rows)
		switch ct {
		case ColorTransformNone:
			copyYCbCr(m, minY, p)
		case ColorTransformYCbCr:
			applyICT(m, minY, p)
		case ColorTransformRCT:
			applyRCT(m, minY, p)
		default:
			return engineErrorf(ErrNotApplicable, "colour transformation %s needs a free-form transform in the stream", ct)
		}
		return nil

	case *image.RGBA:
		p.reset(3, b.Dx(), rows)
		for r := range rows {
			off := m.PixOffset(b.Min.X, b.Min.Y+minY+r)
			for x := range p.width {
				px := m.Pix[off+4*x : off+4*x+3]
				i := r*p.width + x
				p.planes[0][i] = px[0]
				p.planes[1][i] = px[1]
				p.planes[2][i] = px[2]
			}
		}
		return nil

	default:
		return engineErrorf(ErrNotApplicable, "decoded image model %T is not supported", img)
	}
}

// copyYCbCr delivers the Y, Cb and Cr planes untransformed, replicating
// sub-sampled chroma.
func copyYCbCr(m *image.YCbCr, minY int, p *stripePlanes) {
	x0, y0 := m.Rect.Min.X, m.Rect.Min.Y
	for r := range p.rows {
		for x := range p.width {
			yi := m.YOffset(x0+x, y0+minY+r)
			ci := m.COffset(x0+x, y0+minY+r)
			i := r*p.width + x
			p.planes[0][i] = m.Y[yi]
			p.planes[1][i] = m.Cb[ci]
			p.planes[2][i] = m.Cr[ci]
		}
	}
}

// applyICT applies the inverse irreversible colour transform to one stripe:
//
//	R = Y + 1.402 * Cr
//	G = Y - 0.344136 * Cb - 0.714136 * Cr
//	B = Y + 1.772 * Cb
func applyICT(m *image.YCbCr, minY int, p *stripePlanes) {
	buf := getFloat64Buf(p.width, p.rows)
	defer putFloat64Buf(buf)

	in, out := buf.in(), buf.out()
	loadYCbCr(m, minY, p.rows, in)
	hwyimage.InverseICT(in[0], in[1], in[2], out[0], out[1], out[2])
	storePlanes(out, p.rows, p.planes, clampFloat)
}

// applyRCT applies the inverse reversible colour transform to one stripe:
//
//	G = Y - floor((Cb + Cr) / 4)
//	B = Cb + G
//	R = Cr + G
func applyRCT(m *image.YCbCr, minY int, p *stripePlanes) {
	buf := getInt32Buf(p.width, p.rows)
	defer putInt32Buf(buf)

	in, out := buf.in(), buf.out()
	loadYCbCr(m, minY, p.rows, in)
	hwyimage.InverseRCT(in[0], in[1], in[2], out[0], out[1], out[2])
	storePlanes(out, p.rows, p.planes, clampToUint8)
}

// clampToUint8 clamps a value to [0, 255] range
func clampToUint8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampFloat clamps a float to [0, 255] and converts to uint8
func clampFloat(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
