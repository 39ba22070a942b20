package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/fandns/fandns/internal/dns/domain"
)

// recordFixedLength is the size of the type, class, ttl, and rdlength
// fields that follow a record's name.
const recordFixedLength = 10

// decodeRecord parses one resource record starting at off: a name, then
// type, class, 4-byte ttl, 2-byte rdlength, and exactly rdlength bytes of
// raw rdata. The rdata is copied so the record does not alias the message
// buffer.
func decodeRecord(msg []byte, off int) (domain.ResourceRecord, int, error) {
	name, pos, err := decodeName(msg, off)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if pos+recordFixedLength > len(msg) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record fields at offset %d", ErrUnexpectedEOF, pos)
	}
	rtype := domain.QType(binary.BigEndian.Uint16(msg[pos : pos+2]))
	if !rtype.IsValid() {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: %d", ErrUnknownQType, uint16(rtype))
	}
	rclass := domain.QClass(binary.BigEndian.Uint16(msg[pos+2 : pos+4]))
	if !rclass.IsValid() {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: %d", ErrUnknownQClass, uint16(rclass))
	}
	ttl := binary.BigEndian.Uint32(msg[pos+4 : pos+8])
	rdLength := int(binary.BigEndian.Uint16(msg[pos+8 : pos+10]))
	pos += recordFixedLength

	if pos+rdLength > len(msg) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata at offset %d needs %d bytes", ErrUnexpectedEOF, pos, rdLength)
	}
	rdata := make([]byte, rdLength)
	copy(rdata, msg[pos:pos+rdLength])

	rr := domain.ResourceRecord{
		Name:  name,
		Type:  rtype,
		Class: rclass,
		TTL:   ttl,
		Data:  rdata,
	}
	return rr, pos + rdLength, nil
}

// AppendRecord appends the wire form of rr to dst. The rdlength field is
// derived from the payload, never stored separately.
func AppendRecord(dst []byte, rr domain.ResourceRecord) []byte {
	dst = AppendName(dst, rr.Name)
	dst = binary.BigEndian.AppendUint16(dst, uint16(rr.Type))
	dst = binary.BigEndian.AppendUint16(dst, uint16(rr.Class))
	dst = binary.BigEndian.AppendUint32(dst, rr.TTL)
	dst = binary.BigEndian.AppendUint16(dst, rr.RDLength())
	return append(dst, rr.Data...)
}
