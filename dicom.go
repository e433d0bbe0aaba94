package jpegbridge

import "slices"

// DICOM transfer syntax UIDs of the JPEG family.
const (
	JPEGBaseline       = "1.2.840.10008.1.2.4.50" // JPEG Baseline (Process 1)
	JPEGExtended       = "1.2.840.10008.1.2.4.51" // JPEG Extended (Process 2 and 4)
	JPEGLosslessP14    = "1.2.840.10008.1.2.4.57" // JPEG Lossless, Non-Hierarchical (Process 14)
	JPEGLosslessSV1    = "1.2.840.10008.1.2.4.70" // JPEG Lossless, First-Order Prediction
	JPEGLSLossless     = "1.2.840.10008.1.2.4.80" // JPEG-LS Lossless
	JPEGLSNearLossless = "1.2.840.10008.1.2.4.81" // JPEG-LS Lossy (Near-Lossless)
)

// SupportedTransferSyntaxes lists the transfer syntaxes whose pixel data a
// full engine can decode through the bridge.
var SupportedTransferSyntaxes = []string{
	JPEGBaseline,
	JPEGExtended,
	JPEGLosslessP14,
	JPEGLosslessSV1,
	JPEGLSLossless,
	JPEGLSNearLossless,
}

// SupportsTransferSyntax reports whether uid is one of
// SupportedTransferSyntaxes.
func SupportsTransferSyntax(uid string) bool {
	return slices.Contains(SupportedTransferSyntaxes, uid)
}

// ColorTransformFor returns the colour transformation to request for pixel
// data with the given photometric interpretation. Data stored as YBR is
// returned untransformed; RGB data was compressed as YCbCr and is
// transformed back. An unknown interpretation yields ColorTransformNone
// and false.
func ColorTransformFor(photometric string) (ColorTransform, bool) {
	switch photometric {
	case "MONOCHROME1", "MONOCHROME2", "YBR_FULL", "YBR_FULL_422":
		return ColorTransformNone, true
	case "RGB":
		return ColorTransformYCbCr, true
	default:
		return ColorTransformNone, false
	}
}
