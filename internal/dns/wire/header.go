// Package wire implements the RFC 1035 §4 binary message format: header
// bit-field packing, domain-name labels with message-compression pointer
// resolution, and question/record/message assembly. All multi-byte fields
// are big-endian. The package is pure: no logging, no I/O, no shared state.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/fandns/fandns/internal/dns/domain"
)

// HeaderLength is the fixed size of the DNS message header.
const HeaderLength = 12

// Bit positions inside the two flag-and-code header bytes. Byte 3 of the
// header carries QR(7) OPCODE(6-3) AA(2) TC(1) RD(0); byte 4 carries
// RA(7) Z(6-4) RCODE(3-0).
const (
	qrBit         = 7
	opcodeShift   = 3
	opcodeMask    = 0x0F
	aaBit         = 2
	tcBit         = 1
	rdBit         = 0
	raBit         = 7
	reservedShift = 4
	reservedMask  = 0x07
	rcodeMask     = 0x0F
)

// packFlagBytes encodes the header's bit-packed fields into the third and
// fourth header bytes.
func packFlagBytes(h domain.Header) (byte, byte) {
	var b2, b3 byte
	if h.IsResponse {
		b2 |= 1 << qrBit
	}
	b2 |= (h.OpCode.Value() & opcodeMask) << opcodeShift
	if h.Authoritative {
		b2 |= 1 << aaBit
	}
	if h.Truncated {
		b2 |= 1 << tcBit
	}
	if h.RecursionDesired {
		b2 |= 1 << rdBit
	}
	if h.RecursionAvailable {
		b3 |= 1 << raBit
	}
	b3 |= (h.ReservedZ & reservedMask) << reservedShift
	b3 |= h.ResponseCode.Value() & rcodeMask
	return b2, b3
}

// unpackFlagBytes decodes the third and fourth header bytes into h's
// bit-packed fields. Reserved opcode/rcode ranges fold to their canonical
// Reserved representative, so re-encoding is lossy for those ranges only.
func unpackFlagBytes(b2, b3 byte, h *domain.Header) {
	h.IsResponse = b2>>qrBit&1 == 1
	h.OpCode = domain.OpCodeFromValue(b2 >> opcodeShift & opcodeMask)
	h.Authoritative = b2>>aaBit&1 == 1
	h.Truncated = b2>>tcBit&1 == 1
	h.RecursionDesired = b2>>rdBit&1 == 1
	h.RecursionAvailable = b3>>raBit&1 == 1
	h.ReservedZ = b3 >> reservedShift & reservedMask
	h.ResponseCode = domain.RCodeFromValue(b3 & rcodeMask)
}

// DecodeHeader parses the fixed 12-byte header. Input of any other length
// fails with ErrMalformedHeader.
func DecodeHeader(data []byte) (domain.Header, error) {
	if len(data) != HeaderLength {
		return domain.Header{}, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedHeader, len(data), HeaderLength)
	}
	var h domain.Header
	h.ID = binary.BigEndian.Uint16(data[0:2])
	unpackFlagBytes(data[2], data[3], &h)
	h.QuestionCount = binary.BigEndian.Uint16(data[4:6])
	h.AnswerCount = binary.BigEndian.Uint16(data[6:8])
	h.AuthorityCount = binary.BigEndian.Uint16(data[8:10])
	h.AdditionalCount = binary.BigEndian.Uint16(data[10:12])
	return h, nil
}

// AppendHeader appends the 12-byte wire form of h to dst.
func AppendHeader(dst []byte, h domain.Header) []byte {
	dst = binary.BigEndian.AppendUint16(dst, h.ID)
	b2, b3 := packFlagBytes(h)
	dst = append(dst, b2, b3)
	dst = binary.BigEndian.AppendUint16(dst, h.QuestionCount)
	dst = binary.BigEndian.AppendUint16(dst, h.AnswerCount)
	dst = binary.BigEndian.AppendUint16(dst, h.AuthorityCount)
	dst = binary.BigEndian.AppendUint16(dst, h.AdditionalCount)
	return dst
}

// EncodeHeader returns the 12-byte wire form of h.
func EncodeHeader(h domain.Header) []byte {
	return AppendHeader(make([]byte, 0, HeaderLength), h)
}
