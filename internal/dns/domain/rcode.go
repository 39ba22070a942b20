package domain

import "fmt"

// RCode is the 4-bit RCODE header field describing the result of a query.
type RCode uint8

// RCODE values per RFC 1035 §4.1.1.
const (
	RCodeNoError        RCode = 0 // no error condition
	RCodeFormatError    RCode = 1 // the server could not interpret the query
	RCodeServerFailure  RCode = 2 // the server failed to process the query
	RCodeNameError      RCode = 3 // the queried domain does not exist
	RCodeNotImplemented RCode = 4 // the requested kind of query is unsupported
	RCodeRefused        RCode = 5 // refused for policy reasons
	// RCodeReserved is the canonical representative for the reserved range
	// 6-15; decoding folds every reserved value to it, mirroring OpCode.
	RCodeReserved RCode = 6
)

// RCodeFromValue maps a 4-bit wire value to an RCode, folding the reserved
// range 6-15 to RCodeReserved.
func RCodeFromValue(v uint8) RCode {
	if v <= 5 {
		return RCode(v)
	}
	return RCodeReserved
}

// Value returns the 4-bit wire representation of the RCode.
func (r RCode) Value() uint8 {
	return uint8(r)
}

// IsValid returns true if the RCode is one of the canonical values.
func (r RCode) IsValid() bool {
	return r <= RCodeReserved
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormatError:
		return "FORMERR"
	case RCodeServerFailure:
		return "SERVFAIL"
	case RCodeNameError:
		return "NXDOMAIN"
	case RCodeNotImplemented:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	case RCodeReserved:
		return "RESERVED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}
