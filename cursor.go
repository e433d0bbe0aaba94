package jpegbridge

// byteCursor tracks a read/write position within a fixed-length byte slice.
// The slice is borrowed for the duration of one decode call.
//
// Invariant: 0 <= pos <= len(data). No operation touches bytes past the end.
type byteCursor struct {
	data []byte
	pos  int
}

// newByteCursor creates a cursor positioned at the start of data.
func newByteCursor(data []byte) *byteCursor {
	return &byteCursor{data: data}
}

// Read copies up to len(dst) bytes from the current position into dst and
// advances by the amount copied. It returns 0 at the end of the buffer;
// that is not an error.
func (c *byteCursor) Read(dst []byte) int {
	n := copy(dst, c.data[c.pos:])
	c.pos += n
	return n
}

// Write copies up to len(src) bytes into the buffer at the current position
// and advances by the amount copied. Bytes that do not fit are dropped.
func (c *byteCursor) Write(src []byte) int {
	n := copy(c.data[c.pos:], src)
	c.pos += n
	return n
}

// Position returns the current offset.
func (c *byteCursor) Position() int {
	return c.pos
}

// Len returns the total length of the underlying buffer.
func (c *byteCursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of bytes between the position and the end.
func (c *byteCursor) Remaining() int {
	return len(c.data) - c.pos
}
