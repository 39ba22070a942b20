package wire

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/fandns/fandns/internal/dns/domain"
)

// maxPointerHops bounds how many compression pointers one name may chase.
// A legitimate name needs at most a handful; the bound turns a crafted
// pointer cycle into ErrPointerLoopOrOutOfRange instead of unbounded work.
const maxPointerHops = 16

// Length-byte top-bit patterns: 00 is a literal label, 11 a compression
// pointer, 01 and 10 are reserved and rejected.
const (
	labelTypeMask     = 0xC0
	pointerPrefix     = 0xC0
	pointerOffsetMask = 0x3FFF
)

// decodeName reads a domain name from msg starting at off. Offsets are
// absolute into the whole message because compression pointers reference
// positions from the start of the message, not from the current entry.
// The returned offset is the position immediately after the name's bytes at
// the original location: past the terminating zero, or past the two pointer
// bytes if the name ended in a pointer, so sibling fields are read correctly.
func decodeName(msg []byte, off int) (domain.Name, int, error) {
	var name domain.Name
	pos := off
	resume := -1 // set once the first pointer is followed
	hops := 0
	for {
		if pos >= len(msg) {
			return nil, 0, fmt.Errorf("%w: name at offset %d runs past the buffer", ErrUnexpectedEOF, off)
		}
		b := msg[pos]
		switch {
		case b == 0:
			if resume == -1 {
				resume = pos + 1
			}
			return name, resume, nil

		case b&labelTypeMask == pointerPrefix:
			if pos+2 > len(msg) {
				return nil, 0, fmt.Errorf("%w: truncated compression pointer at offset %d", ErrUnexpectedEOF, pos)
			}
			target := int(binary.BigEndian.Uint16(msg[pos:pos+2]) & pointerOffsetMask)
			if resume == -1 {
				resume = pos + 2
			}
			hops++
			if hops > maxPointerHops {
				return nil, 0, fmt.Errorf("%w: more than %d pointer hops", ErrPointerLoopOrOutOfRange, maxPointerHops)
			}
			if target >= len(msg) {
				return nil, 0, fmt.Errorf("%w: pointer target %d beyond message length %d", ErrPointerLoopOrOutOfRange, target, len(msg))
			}
			pos = target

		case b&labelTypeMask != 0:
			// 01 and 10 are reserved label types in this profile.
			return nil, 0, fmt.Errorf("%w: reserved label type byte 0x%02x at offset %d", ErrInvalidLabelEncoding, b, pos)

		default:
			start := pos + 1
			end := start + int(b)
			if end > len(msg) {
				return nil, 0, fmt.Errorf("%w: label at offset %d needs %d bytes", ErrUnexpectedEOF, pos, int(b))
			}
			raw := msg[start:end]
			if !utf8.Valid(raw) {
				return nil, 0, fmt.Errorf("%w: label at offset %d is not valid UTF-8", ErrInvalidLabelEncoding, pos)
			}
			name = append(name, domain.Label(raw))
			pos = end
		}
	}
}

// AppendName appends the uncompressed wire form of n to dst: one
// (length, bytes) pair per label followed by the terminating zero byte.
// Compression is never produced on encode.
func AppendName(dst []byte, n domain.Name) []byte {
	for _, l := range n {
		dst = append(dst, byte(len(l)))
		dst = append(dst, l...)
	}
	return append(dst, 0)
}

// EncodeName returns the uncompressed wire form of n.
func EncodeName(n domain.Name) []byte {
	return AppendName(nil, n)
}
