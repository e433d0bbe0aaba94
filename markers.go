package jpegbridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// JPEG (ITU-T T.81) marker codes
const (
	markerTEM   uint16 = 0xFF01 // Temporary private use in arithmetic coding
	markerSOF0  uint16 = 0xFFC0 // Baseline DCT
	markerSOF1  uint16 = 0xFFC1 // Extended sequential DCT
	markerSOF2  uint16 = 0xFFC2 // Progressive DCT
	markerSOF3  uint16 = 0xFFC3 // Lossless (sequential)
	markerDHT   uint16 = 0xFFC4 // Define Huffman table(s)
	markerJPG   uint16 = 0xFFC8 // Reserved for JPEG extensions
	markerDAC   uint16 = 0xFFCC // Define arithmetic coding conditioning(s)
	markerSOF15 uint16 = 0xFFCF // Differential lossless, arithmetic
	markerRST0  uint16 = 0xFFD0 // Restart with modulo 8 count 0
	markerRST7  uint16 = 0xFFD7 // Restart with modulo 8 count 7
	markerSOI   uint16 = 0xFFD8 // Start of image
	markerEOI   uint16 = 0xFFD9 // End of image
	markerSOS   uint16 = 0xFFDA // Start of scan
	markerDQT   uint16 = 0xFFDB // Define quantization table(s)
	markerDNL   uint16 = 0xFFDC // Define number of lines
	markerDRI   uint16 = 0xFFDD // Define restart interval
	markerAPP0  uint16 = 0xFFE0 // JFIF
	markerAPP14 uint16 = 0xFFEE // Adobe
	markerCOM   uint16 = 0xFFFE // Comment
)

// isSOF reports whether m starts a frame header.
func isSOF(m uint16) bool {
	return m >= markerSOF0 && m <= markerSOF15 &&
		m != markerDHT && m != markerJPG && m != markerDAC
}

// isStandalone reports whether m is a marker without a length field.
func isStandalone(m uint16) bool {
	return m == markerTEM || m == markerSOI || m == markerEOI ||
		(m >= markerRST0 && m <= markerRST7)
}

// frameProcess names the coding process of a frame marker.
func frameProcess(m uint16) string {
	switch m {
	case markerSOF0:
		return "Baseline DCT"
	case markerSOF1, 0xFFC9:
		return "Extended sequential DCT"
	case markerSOF2, 0xFFCA:
		return "Progressive DCT"
	case markerSOF3, 0xFFCB:
		return "Lossless (sequential)"
	case 0xFFC5, 0xFFCD:
		return "Differential sequential DCT"
	case 0xFFC6, 0xFFCE:
		return "Differential progressive DCT"
	case 0xFFC7, markerSOF15:
		return "Differential lossless (sequential)"
	default:
		return "Unknown"
	}
}

// frameComponent is one component entry of a frame header.
type frameComponent struct {
	ID int // Component identifier
	H  int // Horizontal sampling factor
	V  int // Vertical sampling factor
	Tq int // Quantization table selector
}

// frameHeader contains the parsed SOFn segment.
type frameHeader struct {
	Marker     uint16
	Precision  int // Sample precision P
	Height     int // Number of lines Y (0 means defined by DNL)
	Width      int // Samples per line X
	Components []frameComponent
}

// subsampling returns the per-component sub-sampling factors relative to
// the largest sampling factor of the frame.
func (f *frameHeader) subsampling() (subX, subY []int) {
	hmax, vmax := 1, 1
	for _, c := range f.Components {
		hmax = max(hmax, c.H)
		vmax = max(vmax, c.V)
	}
	subX = make([]int, len(f.Components))
	subY = make([]int, len(f.Components))
	for i, c := range f.Components {
		subX[i] = hmax / max(c.H, 1)
		subY[i] = vmax / max(c.V, 1)
	}
	return subX, subY
}

// subsampled reports whether any component is stored at reduced resolution.
func (f *frameHeader) subsampled() bool {
	subX, subY := f.subsampling()
	for i := range subX {
		if subX[i] != 1 || subY[i] != 1 {
			return true
		}
	}
	return false
}

// parseSOF parses a frame header segment. seg holds the segment after the
// marker, starting with the two length bytes.
func parseSOF(marker uint16, seg []byte) (*frameHeader, error) {
	if len(seg) < 8 {
		return nil, engineErrorf(ErrMalformedStream, "frame header of %d bytes is too short", len(seg))
	}
	f := &frameHeader{
		Marker:    marker,
		Precision: int(seg[2]),
		Height:    int(binary.BigEndian.Uint16(seg[3:5])),
		Width:     int(binary.BigEndian.Uint16(seg[5:7])),
	}
	nf := int(seg[7])
	if nf == 0 {
		return nil, engineErrorf(ErrMalformedStream, "frame header declares no components")
	}
	if len(seg) < 8+3*nf {
		return nil, engineErrorf(ErrMalformedStream, "frame header truncated: %d components need %d bytes, have %d",
			nf, 8+3*nf, len(seg))
	}
	f.Components = make([]frameComponent, nf)
	for i := range nf {
		off := 8 + 3*i
		f.Components[i] = frameComponent{
			ID: int(seg[off]),
			H:  int(seg[off+1] >> 4),
			V:  int(seg[off+1] & 0x0F),
			Tq: int(seg[off+2]),
		}
	}
	return f, nil
}

// jpegHeader is what the header scan learned about a stream.
type jpegHeader struct {
	frame          *frameHeader
	jfif           bool
	adobe          bool
	adobeTransform int
}

// headerScanner reads marker segments from r and keeps every consumed byte
// so the stream can be replayed from the start.
type headerScanner struct {
	r        io.Reader
	consumed bytes.Buffer
}

func (s *headerScanner) readFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.consumed.Write(p[:n])
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return engineErrorf(ErrUnexpectedEOF, "stream ended after %d header bytes", s.consumed.Len())
	}
	return engineErrorf(ErrUnexpectedEOF, "reading stream header: %v", err)
}

// nextMarker reads the next marker, skipping 0xFF fill bytes.
func (s *headerScanner) nextMarker() (uint16, error) {
	var b [1]byte
	if err := s.readFull(b[:]); err != nil {
		return 0, err
	}
	if b[0] != 0xFF {
		return 0, engineErrorf(ErrMalformedStream, "expected marker at offset %d, found 0x%02X",
			s.consumed.Len()-1, b[0])
	}
	for b[0] == 0xFF {
		if err := s.readFull(b[:]); err != nil {
			return 0, err
		}
	}
	if b[0] == 0x00 {
		return 0, engineErrorf(ErrMalformedStream, "stuffed zero byte outside entropy coded data")
	}
	return 0xFF00 | uint16(b[0]), nil
}

// segment reads the length field and payload of the current marker
// segment. The returned slice starts with the length bytes.
func (s *headerScanner) segment() ([]byte, error) {
	var lb [2]byte
	if err := s.readFull(lb[:]); err != nil {
		return nil, err
	}
	length := int(binary.BigEndian.Uint16(lb[:]))
	if length < 2 {
		return nil, engineErrorf(ErrMalformedStream, "marker segment length %d", length)
	}
	seg := make([]byte, length)
	copy(seg, lb[:])
	if err := s.readFull(seg[2:]); err != nil {
		return nil, err
	}
	return seg, nil
}

// scanHeader reads r up to and including the first frame header. It
// returns the parsed header and the bytes consumed from r.
func scanHeader(r io.Reader) (*jpegHeader, []byte, error) {
	s := &headerScanner{r: r}
	var soi [2]byte
	if err := s.readFull(soi[:]); err != nil {
		return nil, nil, err
	}
	if binary.BigEndian.Uint16(soi[:]) != markerSOI {
		return nil, nil, engineErrorf(ErrMalformedStream, "SOI marker not found")
	}

	h := &jpegHeader{}
	for {
		marker, err := s.nextMarker()
		if err != nil {
			return nil, nil, err
		}
		switch {
		case isStandalone(marker):
			if marker == markerSOI || marker == markerEOI {
				return nil, nil, engineErrorf(ErrMisplacedMarker, "marker 0x%04X before the frame header", marker)
			}
			continue
		case marker == markerSOS:
			return nil, nil, engineErrorf(ErrMalformedStream, "scan header before the frame header")
		}

		seg, err := s.segment()
		if err != nil {
			return nil, nil, err
		}
		switch {
		case isSOF(marker):
			f, err := parseSOF(marker, seg)
			if err != nil {
				return nil, nil, err
			}
			h.frame = f
			return h, s.consumed.Bytes(), nil
		case marker == markerAPP0:
			h.jfif = len(seg) >= 7 && string(seg[2:7]) == "JFIF\x00"
		case marker == markerAPP14:
			if len(seg) >= 14 && string(seg[2:7]) == "Adobe" {
				h.adobe = true
				h.adobeTransform = int(seg[13])
			}
		}
	}
}
