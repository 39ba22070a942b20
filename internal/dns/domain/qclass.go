package domain

import "fmt"

// QClass is a DNS question/record class code. Only the RFC 1035 §3.2.4/§3.2.5
// values are recognized.
type QClass uint16

// QCLASS values per RFC 1035.
const (
	QClassIN  QClass = 1   // the Internet
	QClassCS  QClass = 2   // CSNET (obsolete)
	QClassCH  QClass = 3   // Chaos
	QClassHS  QClass = 4   // Hesiod
	QClassANY QClass = 255 // any class (query only)
)

// IsValid returns true if the QClass is one of the recognized values.
func (c QClass) IsValid() bool {
	return (c >= QClassIN && c <= QClassHS) || c == QClassANY
}

// String returns the textual representation of the QClass.
func (c QClass) String() string {
	switch c {
	case QClassIN:
		return "IN"
	case QClassCS:
		return "CS"
	case QClassCH:
		return "CH"
	case QClassHS:
		return "HS"
	case QClassANY:
		return "ANY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(c))
	}
}

// QClassFromString converts a class mnemonic to its QClass value.
// Unknown strings return 0 (invalid).
func QClassFromString(s string) QClass {
	switch s {
	case "IN":
		return QClassIN
	case "CS":
		return QClassCS
	case "CH":
		return QClassCH
	case "HS":
		return QClassHS
	case "ANY":
		return QClassANY
	default:
		return 0
	}
}
