package jpegbridge

// ImageParameters is the geometry reported by GetImageParameters.
type ImageParameters struct {
	Width         int
	Height        int
	Components    int
	BitsPerSample int
}

// FrameLength returns the number of bytes one decoded frame occupies when
// every sample is stored in whole bytes.
func (p ImageParameters) FrameLength() int {
	return p.Width * p.Height * p.Components * ((p.BitsPerSample + 7) / 8)
}

// GetImageParameters reads only the stream header of src and reports its
// geometry. No stripes are requested and no pixel memory is allocated.
func GetImageParameters(src []byte, opts *Options) (ImageParameters, Status) {
	o := opts.withDefaults()
	eng, st := openEngine(src, o)
	if !st.OK() {
		return ImageParameters{}, st
	}
	defer eng.Close()

	info, err := eng.Information()
	if err != nil {
		return ImageParameters{}, statusOf(err)
	}
	return ImageParameters{
		Width:         info.Width,
		Height:        info.Height,
		Components:    info.Depth,
		BitsPerSample: info.Precision,
	}, Status{}
}
