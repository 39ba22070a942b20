package domain

import "fmt"

// Header is the fixed 12-byte DNS message header of RFC 1035 §4.1.1, with
// the two flag-and-code bytes unpacked into named fields.
type Header struct {
	// ID is copied from query to response so clients can match them up.
	ID uint16
	// IsResponse is the QR bit: false for queries, true for responses.
	IsResponse bool
	// OpCode is the 4-bit kind-of-query field, set by the originator.
	OpCode OpCode
	// Authoritative (AA) is set when the responder owns the queried zone.
	Authoritative bool
	// Truncated (TC) is set when the message exceeded the transport limit.
	Truncated bool
	// RecursionDesired (RD) asks the server to resolve recursively.
	RecursionDesired bool
	// RecursionAvailable (RA) advertises recursive service in responses.
	RecursionAvailable bool
	// ReservedZ is the 3-bit Z field, zero in this profile.
	ReservedZ uint8
	// ResponseCode is the 4-bit RCODE result field.
	ResponseCode RCode

	// Section entry counts. When encoding, QuestionCount and AnswerCount
	// must equal the number of entries actually present in the message;
	// when decoding they bound how many entries are read.
	QuestionCount   uint16
	AnswerCount     uint16
	AuthorityCount  uint16
	AdditionalCount uint16
}

// Validate checks that the bit-packed fields fit their wire widths.
func (h Header) Validate() error {
	if !h.OpCode.IsValid() {
		return fmt.Errorf("invalid opcode: %d", h.OpCode)
	}
	if !h.ResponseCode.IsValid() {
		return fmt.Errorf("invalid response code: %d", h.ResponseCode)
	}
	if h.ReservedZ > 0x07 {
		return fmt.Errorf("reserved Z field exceeds 3 bits: %d", h.ReservedZ)
	}
	return nil
}
