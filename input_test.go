package jpegbridge

import (
	"errors"
	"testing"
)

func TestInputBridge_Stream(t *testing.T) {
	tests := []struct {
		name    string
		action  StreamAction
		buf     int
		wantN   int
		wantErr error
	}{
		{"read", ActionRead, 4, 4, nil},
		{"read past end", ActionRead, 16, 10, nil},
		{"write", ActionWrite, 4, 0, ErrUnsupportedOperation},
		{"seek", ActionSeek, 0, 0, ErrUnsupportedOperation},
		{"query", ActionQuery, 0, 0, nil},
		{"unknown", StreamAction(42), 0, -1, ErrUnsupportedOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newInputBridge(newByteCursor(make([]byte, 10)))
			n, err := b.Stream(&StreamRequest{Action: tt.action, Buffer: make([]byte, tt.buf)})
			if n != tt.wantN {
				t.Errorf("Stream() n = %d, want %d", n, tt.wantN)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Stream() err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInputBridge_ReadAdvances(t *testing.T) {
	src := []byte{0xFF, 0xD8, 0xFF, 0xC0, 0x00}
	cur := newByteCursor(src)
	b := newInputBridge(cur)
	buf := make([]byte, 2)

	var got []byte
	for {
		n, err := b.Stream(&StreamRequest{Action: ActionRead, Buffer: buf})
		if err != nil {
			t.Fatalf("Stream failed: %v", err)
		}
		if n == 0 {
			break
		}
		got = append(got, buf[:n]...)
	}
	if string(got) != string(src) {
		t.Errorf("read %v, want %v", got, src)
	}
	if cur.Position() != len(src) {
		t.Errorf("Position = %d, want %d", cur.Position(), len(src))
	}
}
