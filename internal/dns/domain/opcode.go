package domain

import "fmt"

// OpCode is the 4-bit OPCODE header field describing the kind of query.
type OpCode uint8

// OPCODE values per RFC 1035 §4.1.1.
const (
	OpCodeQuery  OpCode = 0 // standard query
	OpCodeIQuery OpCode = 1 // inverse query
	OpCodeStatus OpCode = 2 // server status request
	// OpCodeReserved is the canonical representative for the reserved range
	// 3-15. Decoding folds every reserved value to this one, so re-encoding a
	// reserved opcode always yields 3. The round trip is deliberately lossy
	// for the reserved range.
	OpCodeReserved OpCode = 3
)

// OpCodeFromValue maps a 4-bit wire value to an OpCode, folding the reserved
// range 3-15 to OpCodeReserved.
func OpCodeFromValue(v uint8) OpCode {
	switch v {
	case 0, 1, 2:
		return OpCode(v)
	default:
		return OpCodeReserved
	}
}

// Value returns the 4-bit wire representation of the OpCode.
func (o OpCode) Value() uint8 {
	return uint8(o)
}

// IsValid returns true if the OpCode is one of the canonical values.
func (o OpCode) IsValid() bool {
	return o <= OpCodeReserved
}

// String returns the textual representation of the OpCode.
func (o OpCode) String() string {
	switch o {
	case OpCodeQuery:
		return "QUERY"
	case OpCodeIQuery:
		return "IQUERY"
	case OpCodeStatus:
		return "STATUS"
	case OpCodeReserved:
		return "RESERVED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(o))
	}
}
