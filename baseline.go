package jpegbridge

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
)

// baselineEngine is the reference Engine. It parses the frame header
// itself and leaves entropy decoding to image/jpeg, which supports 8-bit
// baseline and progressive DCT streams.
type baselineEngine struct {
	log *slog.Logger

	in     io.Reader // remaining stream after the header
	header []byte    // bytes consumed by ReadHeader
	frame  *frameHeader

	img    image.Image
	err    error // sticky pixel decode failure
	planes stripePlanes
	closed bool
}

func newBaselineEngine(log *slog.Logger) (Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	return &baselineEngine{log: log}, nil
}

func (e *baselineEngine) ReadHeader(in StreamHook) error {
	if e.closed {
		return engineErrorf(ErrPhaseError, "engine is closed")
	}
	if e.frame != nil {
		return engineErrorf(ErrObjectExists, "stream header already read")
	}
	r := NewStreamReader(in)
	h, consumed, err := scanHeader(r)
	if err != nil {
		return err
	}
	e.in = r
	e.header = consumed
	e.frame = h.frame

	e.log.Debug("jpegbridge: frame header",
		slog.String("process", frameProcess(h.frame.Marker)),
		slog.Int("precision", h.frame.Precision),
		slog.Int("width", h.frame.Width),
		slog.Int("height", h.frame.Height),
		slog.Int("components", len(h.frame.Components)),
		slog.Bool("jfif", h.jfif),
		slog.Bool("adobe", h.adobe),
		slog.Int("adobe_transform", h.adobeTransform),
		slog.Int("header_bytes", len(consumed)))
	return nil
}

func (e *baselineEngine) Information() (ImageInfo, error) {
	f := e.frame
	if f == nil {
		return ImageInfo{}, engineErrorf(ErrObjectMissing, "stream header not read")
	}
	subX, subY := f.subsampling()
	return ImageInfo{
		Width:            f.Width,
		Height:           f.Height,
		Depth:            len(f.Components),
		Precision:        f.Precision,
		OutputConversion: true,
		Alpha:            AlphaOpaque,
		SubX:             subX,
		SubY:             subY,
	}, nil
}

func (e *baselineEngine) DisplayRectangle(req StripeRequest, out BitmapHook) error {
	f := e.frame
	if f == nil {
		return engineErrorf(ErrObjectMissing, "stream header not read")
	}
	if req.MinY < 0 || req.MaxY < req.MinY || req.MinY >= f.Height {
		return engineErrorf(ErrParameterRange, "rectangle rows %d..%d outside frame of height %d",
			req.MinY, req.MaxY, f.Height)
	}
	if !req.ColorTransform.Valid() {
		return engineErrorf(ErrParameterInvalid, "invalid colour transformation %d", int(req.ColorTransform))
	}
	if !req.Upsample && f.subsampled() {
		return engineErrorf(ErrNotApplicable, "sub-sampled components require upsampling")
	}
	if err := e.decode(); err != nil {
		return err
	}

	maxY := min(req.MaxY, f.Height-1)
	rows := maxY - req.MinY + 1
	if err := extractStripe(e.img, req.MinY, rows, req.ColorTransform, &e.planes); err != nil {
		return err
	}
	if len(e.planes.planes) != len(f.Components) {
		return engineErrorf(ErrPhaseError, "decoded %d components, frame header declares %d",
			len(e.planes.planes), len(f.Components))
	}

	for c := range e.planes.planes {
		br := BitmapRequest{Action: ActionRequest, Component: c, MinY: req.MinY, MaxY: maxY}
		out.Bitmap(&br)
		if w := br.Window; w != nil {
			e.fill(w, c, req.MinY, rows)
		}
		out.Bitmap(&BitmapRequest{Action: ActionRelease, Component: c, MinY: req.MinY, MaxY: maxY})
	}
	return nil
}

// fill stores component c of the current stripe into w.
func (e *baselineEngine) fill(w *Window, c, minY, rows int) {
	width := min(w.Width, e.planes.width)
	for y := w.MinY; y < w.MinY+min(w.Height, rows); y++ {
		r := y - minY
		for x := range width {
			v := e.planes.at(c, x, r)
			switch w.PixelType {
			case PixelUByte:
				w.SetUint8(x, y, v)
			case PixelUWord:
				w.SetUint16(x, y, uint16(v))
			case PixelFloat:
				w.SetFloat32(x, y, float32(v)/255)
			}
		}
	}
}

// decode runs the pixel decode once, replaying the header bytes in front
// of the remaining stream.
func (e *baselineEngine) decode() error {
	if e.img != nil || e.err != nil {
		return e.err
	}
	if e.frame.Precision != 8 {
		e.err = engineErrorf(ErrNotInProfile, "%d-bit samples are not supported, only 8-bit", e.frame.Precision)
		return e.err
	}
	img, err := jpeg.Decode(io.MultiReader(bytes.NewReader(e.header), e.in))
	if err != nil {
		e.err = decodeError(err)
		return e.err
	}
	if b := img.Bounds(); b.Dx() != e.frame.Width || b.Dy() != e.frame.Height {
		e.err = engineErrorf(ErrPhaseError, "decoded %dx%d, frame header declares %dx%d",
			b.Dx(), b.Dy(), e.frame.Width, e.frame.Height)
		return e.err
	}
	e.img = img
	e.log.Debug("jpegbridge: frame decoded", slog.String("model", modelName(img)))
	return nil
}

// decodeError maps an image/jpeg failure to an engine error code.
func decodeError(err error) error {
	var ue jpeg.UnsupportedError
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return engineErrorf(ErrUnexpectedEOF, "stream truncated: %v", err)
	case errors.As(err, &ue):
		return engineErrorf(ErrNotInProfile, "%v", err)
	default:
		return engineErrorf(ErrMalformedStream, "%v", err)
	}
}

func modelName(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "gray"
	case *image.YCbCr:
		return "ycbcr"
	case *image.RGBA:
		return "rgb"
	case *image.CMYK:
		return "cmyk"
	default:
		return "other"
	}
}

func (e *baselineEngine) Close() error {
	e.closed = true
	e.img = nil
	e.in = nil
	e.header = nil
	e.planes = stripePlanes{}
	return nil
}
