package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/fandns/fandns/internal/dns/domain"
)

// decodeQuestion parses one question entry starting at off: a name followed
// by 2-byte qtype and qclass. Values outside the enumerated tables are
// decode errors, never silently defaulted.
func decodeQuestion(msg []byte, off int) (domain.Question, int, error) {
	name, pos, err := decodeName(msg, off)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if pos+4 > len(msg) {
		return domain.Question{}, 0, fmt.Errorf("%w: question fields at offset %d", ErrUnexpectedEOF, pos)
	}
	qtype := domain.QType(binary.BigEndian.Uint16(msg[pos : pos+2]))
	if !qtype.IsValid() {
		return domain.Question{}, 0, fmt.Errorf("%w: %d", ErrUnknownQType, uint16(qtype))
	}
	qclass := domain.QClass(binary.BigEndian.Uint16(msg[pos+2 : pos+4]))
	if !qclass.IsValid() {
		return domain.Question{}, 0, fmt.Errorf("%w: %d", ErrUnknownQClass, uint16(qclass))
	}
	q := domain.Question{
		Name:  name,
		Type:  qtype,
		Class: qclass,
	}
	return q, pos + 4, nil
}

// AppendQuestion appends the wire form of q to dst.
func AppendQuestion(dst []byte, q domain.Question) []byte {
	dst = AppendName(dst, q.Name)
	dst = binary.BigEndian.AppendUint16(dst, uint16(q.Type))
	dst = binary.BigEndian.AppendUint16(dst, uint16(q.Class))
	return dst
}
