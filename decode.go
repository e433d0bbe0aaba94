package jpegbridge

import (
	"log/slog"
)

// DefaultMaxScratchBytes bounds the stripe scratch allocation.
const DefaultMaxScratchBytes = 1 << 30

// Options controls a decode call. A nil *Options selects the defaults.
type Options struct {
	// Logger receives debug records about geometry and stripes, and a
	// warning when a decode fails. Nil means slog.Default().
	Logger *slog.Logger

	// NewEngine constructs the decoding engine. Nil selects the baseline
	// engine.
	NewEngine EngineFactory

	// DisableUpsampling asks the engine to deliver sub-sampled components
	// as they are stored. The bridge only supports full-resolution
	// components, so engines will usually refuse such streams.
	DisableUpsampling bool

	// ToneMap maps HDR samples of float images to 8-bit LDR output.
	ToneMap bool

	// Clamp maps negative HDR samples to zero before tone mapping.
	Clamp bool

	// MaxScratchBytes bounds the stripe scratch allocation. Zero means
	// DefaultMaxScratchBytes.
	MaxScratchBytes int

	// Workers is the number of frames DecodeFrames decodes in parallel.
	// Zero or less means GOMAXPROCS.
	Workers int
}

func (o *Options) withDefaults() *Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.NewEngine == nil {
		out.NewEngine = newBaselineEngine
	}
	if out.MaxScratchBytes <= 0 {
		out.MaxScratchBytes = DefaultMaxScratchBytes
	}
	return &out
}

// Decode decodes the complete compressed image in src into dst.
//
// Samples are written component-interleaved, row-major and top row first;
// 16-bit and float samples are big-endian. len(dst) must equal
// width*height*components*bytesPerSample exactly; otherwise nothing is
// decoded and the status carries CodeSizeMismatch.
//
// On an engine failure the destination holds the stripes written before the
// failing one and must be treated as undefined.
func Decode(src, dst []byte, ct ColorTransform, opts *Options) Status {
	if !ct.Valid() {
		return failure(CodeInvalidParameter, "invalid colour transformation %d", int(ct))
	}
	o := opts.withDefaults()
	log := o.Logger

	eng, st := openEngine(src, o)
	if !st.OK() {
		log.Warn("jpegbridge: reading the stream header failed",
			slog.Int("code", st.Code), slog.String("error", st.Message))
		return st
	}
	defer eng.Close()

	st = decodeImage(eng, dst, ct, o)
	if !st.OK() {
		log.Warn("jpegbridge: decoding failed",
			slog.Int("code", st.Code), slog.String("error", st.Message))
	}
	return st
}

// openEngine constructs an engine over src and parses the stream header.
// The returned engine is open only when the status is OK.
func openEngine(src []byte, o *Options) (Engine, Status) {
	eng, err := o.NewEngine(o.Logger)
	if err != nil || eng == nil {
		msg := "engine factory returned nil"
		if err != nil {
			msg = err.Error()
		}
		return nil, failure(CodeEngineConstruction, "%s", msg)
	}
	in := newInputBridge(newByteCursor(src))
	if err := eng.ReadHeader(in); err != nil {
		eng.Close()
		return nil, statusOf(err)
	}
	return eng, Status{}
}

func decodeImage(eng Engine, dst []byte, ct ColorTransform, o *Options) Status {
	log := o.Logger
	info, err := eng.Information()
	if err != nil {
		return statusOf(err)
	}
	log.Debug("jpegbridge: image header",
		slog.Int("width", info.Width),
		slog.Int("height", info.Height),
		slog.Int("depth", info.Depth),
		slog.Int("precision", info.Precision),
		slog.Bool("float", info.Float))

	if info.Width <= 0 || info.Height <= 0 {
		return failure(CodeInvalidParameter, "image has zero width or height (%dx%d)", info.Width, info.Height)
	}
	if info.Depth != 1 && info.Depth != 3 {
		return failure(CodeInvalidParameter, "unsupported number of components %d, want 1 or 3", info.Depth)
	}
	if info.Alpha != AlphaOpaque {
		log.Debug("jpegbridge: ignoring alpha channel", slog.Int("mode", int(info.Alpha)))
	}

	desc := newOutputDescriptor(newByteCursor(dst), info, ct, o)
	want, ok := desc.expectedLength()
	if !ok {
		return failure(CodeAllocationFailed, "image %dx%dx%d is too large", info.Width, info.Height, info.Depth)
	}
	if want != len(dst) {
		return failure(CodeSizeMismatch, "destination holds %d bytes, image needs %d", len(dst), want)
	}

	samples, ok := desc.scratchSamples()
	if !ok || samples > o.MaxScratchBytes/desc.sampleBytes() {
		return failure(CodeAllocationFailed, "unable to allocate memory to buffer the image: stripe of %d samples exceeds limit", samples)
	}
	out := newOutputBridge(desc, newScratch(desc.sampleType, samples))

	req := StripeRequest{
		Upsample:       desc.upsampled,
		ColorTransform: ct,
	}
	for y := 0; y < info.Height; y += stripeRows {
		req.MinY = y
		req.MaxY = min(y+stripeRows, info.Height) - 1
		if err := eng.DisplayRectangle(req, out); err != nil {
			log.Debug("jpegbridge: stripe failed", slog.Int("y", y))
			return statusOf(err)
		}
	}
	log.Debug("jpegbridge: image decoded",
		slog.Int("stripes", out.drains),
		slog.Int("bytes", desc.dst.Position()),
		slog.String("pixel_type", desc.sampleType.String()),
		slog.Bool("color_transform", !desc.noColorTransform),
		slog.Bool("alpha", desc.alpha))
	return Status{}
}
