package domain

import (
	"fmt"
	"math"
)

// ResourceRecord is one answer-section entry: a named data point with a
// type, class, time-to-live, and opaque type-specific payload. The payload
// is kept wire-encoded; its length on the wire is RDLength.
type ResourceRecord struct {
	Name  Name
	Type  QType
	Class QClass
	// TTL is the number of seconds the record may be cached.
	TTL uint32
	// Data is the raw RDATA payload.
	Data []byte
}

// NewResourceRecord constructs a ResourceRecord and validates its fields.
func NewResourceRecord(name Name, qtype QType, qclass QClass, ttl uint32, data []byte) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  name,
		Type:  qtype,
		Class: qclass,
		TTL:   ttl,
		Data:  data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are structurally valid.
func (rr ResourceRecord) Validate() error {
	if err := rr.Name.Validate(); err != nil {
		return fmt.Errorf("record name: %w", err)
	}
	if !rr.Type.IsValid() {
		return fmt.Errorf("unsupported record type: %d", rr.Type)
	}
	if !rr.Class.IsValid() {
		return fmt.Errorf("unsupported record class: %d", rr.Class)
	}
	if len(rr.Data) > math.MaxUint16 {
		return fmt.Errorf("rdata too large: %d bytes (max %d)", len(rr.Data), math.MaxUint16)
	}
	return nil
}

// RDLength returns the RDATA length as carried on the wire.
func (rr ResourceRecord) RDLength() uint16 {
	return uint16(len(rr.Data))
}
