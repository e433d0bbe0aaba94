package jpegbridge

import "fmt"

// inputBridge answers engine read requests from the compressed input.
// Requests are served straight from the caller's slice; there is no
// buffering beyond the cursor.
type inputBridge struct {
	cur *byteCursor
}

func newInputBridge(cur *byteCursor) *inputBridge {
	return &inputBridge{cur: cur}
}

// Stream implements StreamHook. The input is read-only and forward-only,
// so writes and seeks fail.
func (b *inputBridge) Stream(req *StreamRequest) (int, error) {
	switch req.Action {
	case ActionRead:
		return b.cur.Read(req.Buffer), nil
	case ActionWrite, ActionSeek:
		return 0, fmt.Errorf("%w: %s on compressed input", ErrUnsupportedOperation, req.Action)
	case ActionQuery:
		return 0, nil
	default:
		return -1, fmt.Errorf("%w: %s", ErrUnsupportedOperation, req.Action)
	}
}
