package jpegbridge

import (
	"fmt"
	"io"
	"log/slog"
)

// Engine is a row-oriented decoding engine. The bridge never decodes pixels
// itself; it feeds an Engine compressed bytes through a StreamHook and
// collects reconstructed stripes through a BitmapHook.
//
// All callbacks happen synchronously on the goroutine that called into the
// engine.
type Engine interface {
	// ReadHeader parses the stream headers, pulling bytes from in.
	ReadHeader(in StreamHook) error

	// Information reports the geometry parsed by ReadHeader.
	Information() (ImageInfo, error)

	// DisplayRectangle reconstructs the rows [req.MinY, req.MaxY] and hands
	// them to out, one request/release pair per component.
	DisplayRectangle(req StripeRequest, out BitmapHook) error

	// Close releases the engine. It is called on every exit path.
	Close() error
}

// EngineFactory constructs an Engine for one decode call.
type EngineFactory func(log *slog.Logger) (Engine, error)

// StreamAction selects the operation of a StreamRequest.
type StreamAction int

const (
	ActionRead StreamAction = iota
	ActionWrite
	ActionSeek
	ActionQuery
)

func (a StreamAction) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionSeek:
		return "seek"
	case ActionQuery:
		return "query"
	default:
		return fmt.Sprintf("StreamAction(%d)", int(a))
	}
}

// SeekMode is the origin of a seek request.
type SeekMode int

const (
	SeekCurrent SeekMode = iota
	SeekStart
	SeekEnd
)

// StreamRequest is a single I/O callback from the engine.
type StreamRequest struct {
	Action StreamAction
	Buffer []byte // read target or write source
	Mode   SeekMode
	Offset int64
}

// StreamHook serves I/O requests from an engine.
type StreamHook interface {
	Stream(req *StreamRequest) (int, error)
}

// NewStreamReader adapts a StreamHook to an io.Reader. A read that returns
// no bytes and no error is reported as io.EOF.
func NewStreamReader(h StreamHook) io.Reader {
	return &streamReader{hook: h}
}

type streamReader struct {
	hook StreamHook
	req  StreamRequest
}

func (r *streamReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.req = StreamRequest{Action: ActionRead, Buffer: p}
	n, err := r.hook.Stream(&r.req)
	if err != nil {
		return max(n, 0), err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// BitmapAction selects the operation of a BitmapRequest.
type BitmapAction int

const (
	ActionRequest BitmapAction = iota
	ActionRelease
)

func (a BitmapAction) String() string {
	switch a {
	case ActionRequest:
		return "request"
	case ActionRelease:
		return "release"
	default:
		return fmt.Sprintf("BitmapAction(%d)", int(a))
	}
}

// BitmapRequest is a single output callback from the engine. On
// ActionRequest the hook fills Window; on ActionRelease Window is ignored.
type BitmapRequest struct {
	Action    BitmapAction
	Component int
	MinY      int
	MaxY      int
	Window    *Window
}

// BitmapHook serves stripe memory to an engine.
type BitmapHook interface {
	Bitmap(req *BitmapRequest)
}

// StripeRequest asks the engine to reconstruct the rows MinY..MaxY
// inclusive.
type StripeRequest struct {
	MinY           int
	MaxY           int
	Upsample       bool
	ColorTransform ColorTransform
}

// AlphaMode describes how an alpha channel is stored in the stream.
type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaRegular
	AlphaPremultiplied
	AlphaMatteRemoval
)

// ImageInfo is the geometry an engine reports after ReadHeader.
type ImageInfo struct {
	Width     int
	Height    int
	Depth     int // number of components
	Precision int // bits per sample

	Float            bool // samples are floating point (HDR)
	OutputConversion bool // engine converts float samples for output
	Alpha            AlphaMode

	// Sub-sampling factors per component, 1 when not sub-sampled.
	SubX []int
	SubY []int
}

// PixelType is the in-memory type of samples in a Window.
type PixelType uint8

const (
	PixelUByte PixelType = iota + 1
	PixelUWord
	PixelFloat
)

func (t PixelType) String() string {
	switch t {
	case PixelUByte:
		return "ubyte"
	case PixelUWord:
		return "uword"
	case PixelFloat:
		return "float"
	default:
		return fmt.Sprintf("PixelType(%d)", uint8(t))
	}
}

// Size returns the number of bytes of one sample.
func (t PixelType) Size() int {
	switch t {
	case PixelUByte:
		return 1
	case PixelUWord:
		return 2
	case PixelFloat:
		return 4
	default:
		return 0
	}
}

// ColorTransform selects the inverse colour transformation the engine
// applies while reconstructing.
type ColorTransform int

const (
	ColorTransformNone     ColorTransform = 0
	ColorTransformYCbCr    ColorTransform = 1
	ColorTransformLSRCT    ColorTransform = 2
	ColorTransformRCT      ColorTransform = 2
	ColorTransformFreeform ColorTransform = 3
)

// Valid reports whether t is one of the defined transforms.
func (t ColorTransform) Valid() bool {
	return t >= ColorTransformNone && t <= ColorTransformFreeform
}

func (t ColorTransform) String() string {
	switch t {
	case ColorTransformNone:
		return "none"
	case ColorTransformYCbCr:
		return "ycbcr"
	case ColorTransformRCT:
		return "rct"
	case ColorTransformFreeform:
		return "freeform"
	default:
		return fmt.Sprintf("ColorTransform(%d)", int(t))
	}
}
