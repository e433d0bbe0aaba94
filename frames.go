package jpegbridge

import (
	"log/slog"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// DecodeFrames decodes each compressed frame into consecutive, equally sized
// regions of dst. Frames are decoded in parallel on Options.Workers workers;
// each frame gets its own engine, bridges and scratch memory.
//
// len(dst) must be a multiple of len(frames). The returned status is that of
// the lowest-indexed frame that failed, or OK when every frame decoded.
func DecodeFrames(frames [][]byte, dst []byte, ct ColorTransform, opts *Options) Status {
	if len(frames) == 0 {
		return failure(CodeInvalidParameter, "no frames to decode")
	}
	if len(dst)%len(frames) != 0 {
		return failure(CodeSizeMismatch, "destination of %d bytes does not split into %d frames",
			len(dst), len(frames))
	}
	o := opts.withDefaults()
	frameLen := len(dst) / len(frames)

	pool := workerpool.New(min(o.Workers, len(frames)))
	defer pool.Close()

	status := make([]Status, len(frames))
	pool.ParallelForAtomic(len(frames), func(i int) {
		status[i] = Decode(frames[i], dst[i*frameLen:(i+1)*frameLen], ct, o)
	})

	for i, st := range status {
		if !st.OK() {
			o.Logger.Warn("jpegbridge: frame failed",
				slog.Int("frame", i), slog.Int("frames", len(frames)), slog.Int("code", st.Code))
			return st
		}
	}
	o.Logger.Debug("jpegbridge: frames decoded", slog.Int("frames", len(frames)), slog.Int("frame_bytes", frameLen))
	return Status{}
}
