package jpegbridge

import (
	"math"
	"testing"
)

func newTestBridge(dst []byte, width, height, depth, precision int) *outputBridge {
	info := ImageInfo{Width: width, Height: height, Depth: depth, Precision: precision}
	desc := newOutputDescriptor(newByteCursor(dst), info, ColorTransformNone, &Options{})
	samples, _ := desc.scratchSamples()
	return newOutputBridge(desc, newScratch(desc.sampleType, samples))
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestOutputBridge_ProtocolViolations(t *testing.T) {
	t.Run("double request", func(t *testing.T) {
		b := newTestBridge(make([]byte, 8), 8, 1, 1, 8)
		b.Bitmap(&BitmapRequest{Action: ActionRequest, Component: 0, MinY: 0, MaxY: 0})
		mustPanic(t, "second request", func() {
			b.Bitmap(&BitmapRequest{Action: ActionRequest, Component: 0, MinY: 0, MaxY: 0})
		})
	})
	t.Run("release without request", func(t *testing.T) {
		b := newTestBridge(make([]byte, 8), 8, 1, 1, 8)
		mustPanic(t, "release", func() {
			b.Bitmap(&BitmapRequest{Action: ActionRelease, Component: 0})
		})
	})
	t.Run("component out of range", func(t *testing.T) {
		b := newTestBridge(make([]byte, 24), 8, 1, 3, 8)
		mustPanic(t, "request of component 3", func() {
			b.Bitmap(&BitmapRequest{Action: ActionRequest, Component: 3})
		})
		mustPanic(t, "request of component -1", func() {
			b.Bitmap(&BitmapRequest{Action: ActionRequest, Component: -1})
		})
	})
	t.Run("wrong sample type", func(t *testing.T) {
		b := newTestBridge(make([]byte, 8), 8, 1, 1, 8)
		req := BitmapRequest{Action: ActionRequest, Component: 0, MinY: 0, MaxY: 0}
		b.Bitmap(&req)
		mustPanic(t, "SetUint16 on ubyte window", func() { req.Window.SetUint16(0, 0, 1) })
		mustPanic(t, "row outside window", func() { req.Window.SetUint8(0, 1, 1) })
	})
}

func TestOutputBridge_WindowClipping(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		minY, maxY int
		wantHeight int
	}{
		{"full stripe", 16, 0, 7, 8},
		{"last partial stripe", 10, 8, 15, 2},
		{"request beyond stripe", 30, 0, 20, 8},
		{"single row image", 1, 0, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBridge(make([]byte, 4*tt.height*3*2), 4, tt.height, 3, 12)
			req := BitmapRequest{Action: ActionRequest, Component: 1, MinY: tt.minY, MaxY: tt.maxY}
			b.Bitmap(&req)
			w := req.Window
			if w.Height != tt.wantHeight {
				t.Errorf("Height = %d, want %d", w.Height, tt.wantHeight)
			}
			if w.MinY != tt.minY || w.Width != 4 {
				t.Errorf("MinY, Width = %d, %d, want %d, 4", w.MinY, w.Width, tt.minY)
			}
			if w.BytesPerPixel != 6 || w.BytesPerRow != 24 || w.PixelType != PixelUWord {
				t.Errorf("BytesPerPixel, BytesPerRow, PixelType = %d, %d, %v, want 6, 24, uword",
					w.BytesPerPixel, w.BytesPerRow, w.PixelType)
			}
			if got := w.Index(2, tt.minY); got != 2*3+1 {
				t.Errorf("Index(2, MinY) = %d, want 7", got)
			}
		})
	}
}

func TestOutputBridge_DrainOnLastRelease(t *testing.T) {
	dst := make([]byte, 2*1*3)
	b := newTestBridge(dst, 2, 1, 3, 8)
	for c := range 3 {
		req := BitmapRequest{Action: ActionRequest, Component: c, MinY: 0, MaxY: 0}
		b.Bitmap(&req)
		req.Window.SetUint8(0, 0, uint8(10+c))
		req.Window.SetUint8(1, 0, uint8(20+c))
	}
	for c := range 2 {
		b.Bitmap(&BitmapRequest{Action: ActionRelease, Component: c})
		if b.drains != 0 {
			t.Fatalf("drained after releasing component %d", c)
		}
	}
	b.Bitmap(&BitmapRequest{Action: ActionRelease, Component: 2})
	if b.drains != 1 {
		t.Fatalf("drains = %d, want 1", b.drains)
	}
	want := []byte{10, 11, 12, 20, 21, 22}
	if string(dst) != string(want) {
		t.Errorf("dst = %v, want %v", dst, want)
	}
}

func TestOutputBridge_OverflowDropped(t *testing.T) {
	dst := make([]byte, 4)
	b := newTestBridge(dst, 16, 1, 1, 8)
	req := BitmapRequest{Action: ActionRequest, Component: 0, MinY: 0, MaxY: 0}
	b.Bitmap(&req)
	for x := range 16 {
		req.Window.SetUint8(x, 0, uint8(x+1))
	}
	b.Bitmap(&BitmapRequest{Action: ActionRelease, Component: 0})
	if string(dst) != string([]byte{1, 2, 3, 4}) {
		t.Errorf("dst = %v, want [1 2 3 4]", dst)
	}
	if pos := b.desc.dst.Position(); pos != 4 {
		t.Errorf("Position = %d, want 4", pos)
	}
}

func TestOutputDescriptor_PixelType(t *testing.T) {
	tests := []struct {
		name      string
		info      ImageInfo
		toneMap   bool
		wantType  PixelType
		wantBytes int
	}{
		{"8-bit", ImageInfo{Precision: 8}, false, PixelUByte, 1},
		{"12-bit", ImageInfo{Precision: 12}, false, PixelUWord, 2},
		{"16-bit", ImageInfo{Precision: 16}, false, PixelUWord, 2},
		{"float converted", ImageInfo{Precision: 16, Float: true, OutputConversion: true}, false, PixelUWord, 2},
		{"float raw", ImageInfo{Precision: 16, Float: true}, false, PixelFloat, 4},
		{"float tone mapped", ImageInfo{Precision: 16, Float: true}, true, PixelFloat, 1},
		{"half tone mapped", ImageInfo{Precision: 16, Float: true, OutputConversion: true}, true, PixelUWord, 1},
		{"integer ignores tone map", ImageInfo{Precision: 16}, true, PixelUWord, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newOutputDescriptor(newByteCursor(nil), tt.info, ColorTransformNone, &Options{ToneMap: tt.toneMap})
			if d.sampleType != tt.wantType {
				t.Errorf("sampleType = %v, want %v", d.sampleType, tt.wantType)
			}
			if got := d.outputBytes(); got != tt.wantBytes {
				t.Errorf("outputBytes() = %d, want %d", got, tt.wantBytes)
			}
		})
	}
}

func TestMulChecked(t *testing.T) {
	if p, ok := mulChecked(3, 4, 5); !ok || p != 60 {
		t.Errorf("mulChecked(3, 4, 5) = %d, %v, want 60, true", p, ok)
	}
	if p, ok := mulChecked(7, 0, math.MaxInt); !ok || p != 0 {
		t.Errorf("mulChecked(7, 0, MaxInt) = %d, %v, want 0, true", p, ok)
	}
	if _, ok := mulChecked(math.MaxInt/2, 3); ok {
		t.Error("mulChecked(MaxInt/2, 3) did not report overflow")
	}
	if _, ok := mulChecked(-1, 2); ok {
		t.Error("mulChecked(-1, 2) accepted a negative factor")
	}
}

func TestOutputBridge_DrainCount(t *testing.T) {
	for _, height := range []int{1, 7, 8, 9, 16, 17, 33} {
		e := newFakeEngine(ImageInfo{Width: 5, Height: height, Depth: 3, Precision: 8})
		dst := make([]byte, 5*height*3)
		b := newTestBridge(dst, 5, height, 3, 8)
		for y := 0; y < height; y += stripeRows {
			req := StripeRequest{MinY: y, MaxY: min(y+stripeRows, height) - 1}
			if err := e.DisplayRectangle(req, b); err != nil {
				t.Fatalf("DisplayRectangle failed: %v", err)
			}
		}
		if want := (height + 7) / 8; b.drains != want {
			t.Errorf("height %d: drains = %d, want %d", height, b.drains, want)
		}
		if pos := b.desc.dst.Position(); pos != len(dst) {
			t.Errorf("height %d: wrote %d bytes, want %d", height, pos, len(dst))
		}
	}
}
