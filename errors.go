package jpegbridge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidParameter     = errors.New("jpegbridge: invalid parameter")
	ErrSizeMismatch         = errors.New("jpegbridge: destination size mismatch")
	ErrAllocation           = errors.New("jpegbridge: unable to allocate scratch memory")
	ErrEngineConstruction   = errors.New("jpegbridge: failed to construct the decoding engine")
	ErrEngine               = errors.New("jpegbridge: decoding engine failed")
	ErrUnsupportedOperation = errors.New("jpegbridge: unsupported stream operation")
)

// Status codes produced by the bridge itself. Codes reported by the engine
// are forwarded unchanged.
const (
	CodeOK                 = 0
	CodeInvalidParameter   = int(ErrParameterInvalid)
	CodeEngineConstruction = int(ErrConstruction)
	CodeSizeMismatch       = -8888
	CodeAllocationFailed   = -8889
	CodeEngineFailure      = -8890
)

// ErrorCode is an error class reported by a decoding engine.
type ErrorCode int

// Engine error codes. The values match the libjpeg error list so that
// statuses produced by real engines keep their meaning.
const (
	ErrParameterInvalid  ErrorCode = -1024
	ErrUnexpectedEOF     ErrorCode = -1025
	ErrOverflowParameter ErrorCode = -1026
	ErrStreamEmpty       ErrorCode = -1027
	ErrParameterRange    ErrorCode = -1028
	ErrNotApplicable     ErrorCode = -1029
	ErrObjectExists      ErrorCode = -1030
	ErrObjectMissing     ErrorCode = -1031
	ErrMissingParameter  ErrorCode = -1032
	ErrBadStuffing       ErrorCode = -1033
	ErrNotImplemented    ErrorCode = -1034
	ErrPhaseError        ErrorCode = -1035
	ErrMalformedStream   ErrorCode = -1036
	ErrDoubleMarker      ErrorCode = -1037
	ErrMisplacedMarker   ErrorCode = -1038
	ErrNotInProfile      ErrorCode = -1040
	ErrThreadAbort       ErrorCode = -1041
	ErrHuffmanDesign     ErrorCode = -1042
	ErrConstruction      ErrorCode = -2046
)

var codeDescriptions = map[ErrorCode]string{
	ErrParameterInvalid:  "A parameter for a function was out of range",
	ErrUnexpectedEOF:     "Stream run out of data",
	ErrOverflowParameter: "A code block run out of data",
	ErrStreamEmpty:       "Tried to perform an unputc or an unget on an empty stream",
	ErrParameterRange:    "Some parameter run out of range",
	ErrNotApplicable:     "The requested operation does not apply",
	ErrObjectExists:      "Tried to create an already existing object",
	ErrObjectMissing:     "Tried to access a non-existing object",
	ErrMissingParameter:  "A non-optional parameter was left out",
	ErrBadStuffing:       "Forgot to delay a 0xFF",
	ErrNotImplemented:    "Internal error: the requested operation is not available",
	ErrPhaseError:        "Internal error: an item computed on a former pass does not coincide with the same item on a later pass",
	ErrMalformedStream:   "The stream passed in is no valid jpeg stream",
	ErrDoubleMarker:      "A unique marker turned up more than once. The input stream is most likely corrupt",
	ErrMisplacedMarker:   "A misplaced marker segment was found",
	ErrNotInProfile:      "The specified parameters are valid, but are not supported by the selected profile",
	ErrThreadAbort:       "Internal error: the worker thread that was currently active had to terminate unexpectedly",
	ErrHuffmanDesign:     "The encoder tried to emit a symbol for which no Huffman code was defined",
	ErrConstruction:      "Failed to construct the JPEG object",
}

// Description returns the human readable meaning of an engine error code,
// or the empty string for codes outside the table.
func Description(code int) string {
	return codeDescriptions[ErrorCode(code)]
}

// String returns the description of the code.
func (c ErrorCode) String() string {
	if d, ok := codeDescriptions[c]; ok {
		return d
	}
	return "unknown error " + strconv.Itoa(int(c))
}

// EngineError is returned by engines to report a coded failure. Decode
// forwards Code and Message verbatim into its Status.
type EngineError struct {
	Code    ErrorCode
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("jpegbridge: engine error %d: %s", int(e.Code), e.Message)
}

// Is reports whether target is ErrEngine, so callers can test any engine
// failure with errors.Is.
func (e *EngineError) Is(target error) bool {
	return target == ErrEngine
}

// engineErrorf builds an EngineError with a formatted message.
func engineErrorf(code ErrorCode, format string, args ...any) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// statusSeparator splits the code from the message in a rendered status.
const statusSeparator = "::::"

// Status is the outcome of a bridge call.
type Status struct {
	Code    int
	Message string
}

// OK reports whether the status denotes success.
func (s Status) OK() bool {
	return s.Code == CodeOK
}

// String renders the status as "<code>::::<message>".
func (s Status) String() string {
	return strconv.Itoa(s.Code) + statusSeparator + s.Message
}

// Err converts a failed status into an error that matches one of the
// package sentinels with errors.Is. It returns nil for success.
func (s Status) Err() error {
	if s.OK() {
		return nil
	}
	base := ErrEngine
	switch s.Code {
	case CodeInvalidParameter:
		base = ErrInvalidParameter
	case CodeSizeMismatch:
		base = ErrSizeMismatch
	case CodeAllocationFailed:
		base = ErrAllocation
	case CodeEngineConstruction:
		base = ErrEngineConstruction
	}
	if d := Description(s.Code); d != "" {
		return fmt.Errorf("%w: error code %d: %s - %s", base, s.Code, d, s.Message)
	}
	return fmt.Errorf("%w: error code %d: %s", base, s.Code, s.Message)
}

// ParseStatus parses a status previously rendered with Status.String.
func ParseStatus(s string) (Status, error) {
	code, msg, ok := strings.Cut(s, statusSeparator)
	if !ok {
		return Status{}, fmt.Errorf("%w: status %q has no separator", ErrInvalidParameter, s)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return Status{}, fmt.Errorf("%w: status code %q: %v", ErrInvalidParameter, code, err)
	}
	return Status{Code: n, Message: msg}, nil
}

// statusOf turns an error returned by an engine into a Status.
func statusOf(err error) Status {
	if err == nil {
		return Status{}
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return Status{Code: int(ee.Code), Message: ee.Message}
	}
	return Status{Code: CodeEngineFailure, Message: err.Error()}
}

func failure(code int, format string, args ...any) Status {
	return Status{Code: code, Message: fmt.Sprintf(format, args...)}
}
