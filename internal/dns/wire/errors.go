package wire

import "errors"

// Decode failure kinds. Every decode error wraps exactly one of these so
// callers can classify with errors.Is. Decode errors are not recoverable for
// the message being parsed; the transport drops the offending datagram.
// Encoding has no error path: a structurally valid in-memory value always
// encodes.
var (
	// ErrMalformedHeader reports a header that is not exactly 12 bytes.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrUnexpectedEOF reports a buffer exhausted in the middle of a field.
	ErrUnexpectedEOF = errors.New("unexpected end of message")
	// ErrInvalidLabelEncoding reports a label that is not valid UTF-8 or a
	// length byte using the reserved 01/10 top-bit patterns.
	ErrInvalidLabelEncoding = errors.New("invalid label encoding")
	// ErrPointerLoopOrOutOfRange reports a compression pointer that points
	// outside the message or chains past the hop bound.
	ErrPointerLoopOrOutOfRange = errors.New("compression pointer loop or out of range")
	// ErrUnknownQType reports a type code outside the RFC 1035 value table.
	ErrUnknownQType = errors.New("unknown qtype")
	// ErrUnknownQClass reports a class code outside the RFC 1035 value table.
	ErrUnknownQClass = errors.New("unknown qclass")
	// ErrWrongDirection reports a QR bit contradicting the expected role,
	// e.g. DecodeRequest called on a response.
	ErrWrongDirection = errors.New("message direction mismatch")
)
