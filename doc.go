// Package jpegbridge connects caller-owned byte slices to a row-oriented
// JPEG decoding engine.
//
// The engine pulls compressed bytes from a source slice through a stream
// hook and pushes reconstructed stripes of eight rows through a bitmap hook.
// The bridge owns the stripe scratch memory and, after the last component
// of each stripe is released, encodes it row by row into the destination:
// component-interleaved, top row first, 16-bit and float samples
// big-endian.
//
// Decoding a frame:
//
//	params, st := jpegbridge.GetImageParameters(src, nil)
//	if !st.OK() {
//	    log.Fatal(st.Err())
//	}
//	dst := make([]byte, params.FrameLength())
//	if st := jpegbridge.Decode(src, dst, jpegbridge.ColorTransformYCbCr, nil); !st.OK() {
//	    log.Fatal(st.Err())
//	}
//
// Results are reported as a Status whose String form is "code::::message";
// success is "0::::". Engine error codes are forwarded verbatim.
//
// Without Options.NewEngine the package uses a baseline engine built on
// image/jpeg, which handles 8-bit DCT streams.
package jpegbridge
