package jpegbridge

import "testing"

func TestSupportsTransferSyntax(t *testing.T) {
	for _, uid := range SupportedTransferSyntaxes {
		if !SupportsTransferSyntax(uid) {
			t.Errorf("SupportsTransferSyntax(%q) = false", uid)
		}
	}
	for _, uid := range []string{"", "1.2.840.10008.1.2.1", "1.2.840.10008.1.2.4.90"} {
		if SupportsTransferSyntax(uid) {
			t.Errorf("SupportsTransferSyntax(%q) = true", uid)
		}
	}
}

func TestColorTransformFor(t *testing.T) {
	tests := []struct {
		photometric string
		want        ColorTransform
		known       bool
	}{
		{"MONOCHROME1", ColorTransformNone, true},
		{"MONOCHROME2", ColorTransformNone, true},
		{"RGB", ColorTransformYCbCr, true},
		{"YBR_FULL", ColorTransformNone, true},
		{"YBR_FULL_422", ColorTransformNone, true},
		{"PALETTE COLOR", ColorTransformNone, false},
	}
	for _, tt := range tests {
		got, known := ColorTransformFor(tt.photometric)
		if got != tt.want || known != tt.known {
			t.Errorf("ColorTransformFor(%q) = %v, %v, want %v, %v", tt.photometric, got, known, tt.want, tt.known)
		}
	}
}
