package domain

import "fmt"

// QType is a DNS question/record type code. Only the RFC 1035 §3.2.2/§3.2.3
// value tables are recognized; any other 16-bit value is a decode error, not
// a silently accepted unknown.
type QType uint16

// QTYPE values per RFC 1035.
const (
	QTypeA     QType = 1  // host address
	QTypeNS    QType = 2  // authoritative name server
	QTypeMD    QType = 3  // mail destination (obsolete)
	QTypeMF    QType = 4  // mail forwarder (obsolete)
	QTypeCNAME QType = 5  // canonical name for an alias
	QTypeSOA   QType = 6  // start of a zone of authority
	QTypeMB    QType = 7  // mailbox domain name (experimental)
	QTypeMG    QType = 8  // mail group member (experimental)
	QTypeMR    QType = 9  // mail rename domain name (experimental)
	QTypeNULL  QType = 10 // null RR (experimental)
	QTypeWKS   QType = 11 // well known service description
	QTypePTR   QType = 12 // domain name pointer
	QTypeHINFO QType = 13 // host information
	QTypeMINFO QType = 14 // mailbox or mail list information
	QTypeMX    QType = 15 // mail exchange
	QTypeTXT   QType = 16 // text strings
	QTypeAXFR  QType = 252
	QTypeMAILB QType = 253
	QTypeMAILA QType = 254
	QTypeANY   QType = 255 // all records (query only)
)

// IsValid returns true if the QType is inside the recognized value tables.
func (t QType) IsValid() bool {
	return (t >= QTypeA && t <= QTypeTXT) || (t >= QTypeAXFR && t <= QTypeANY)
}

// String returns the textual representation of the QType.
func (t QType) String() string {
	switch t {
	case QTypeA:
		return "A"
	case QTypeNS:
		return "NS"
	case QTypeMD:
		return "MD"
	case QTypeMF:
		return "MF"
	case QTypeCNAME:
		return "CNAME"
	case QTypeSOA:
		return "SOA"
	case QTypeMB:
		return "MB"
	case QTypeMG:
		return "MG"
	case QTypeMR:
		return "MR"
	case QTypeNULL:
		return "NULL"
	case QTypeWKS:
		return "WKS"
	case QTypePTR:
		return "PTR"
	case QTypeHINFO:
		return "HINFO"
	case QTypeMINFO:
		return "MINFO"
	case QTypeMX:
		return "MX"
	case QTypeTXT:
		return "TXT"
	case QTypeAXFR:
		return "AXFR"
	case QTypeMAILB:
		return "MAILB"
	case QTypeMAILA:
		return "MAILA"
	case QTypeANY:
		return "ANY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
	}
}

// QTypeFromString converts a record type mnemonic to its QType value.
// Unknown strings return 0 (invalid).
func QTypeFromString(s string) QType {
	switch s {
	case "A":
		return QTypeA
	case "NS":
		return QTypeNS
	case "MD":
		return QTypeMD
	case "MF":
		return QTypeMF
	case "CNAME":
		return QTypeCNAME
	case "SOA":
		return QTypeSOA
	case "MB":
		return QTypeMB
	case "MG":
		return QTypeMG
	case "MR":
		return QTypeMR
	case "NULL":
		return QTypeNULL
	case "WKS":
		return QTypeWKS
	case "PTR":
		return QTypePTR
	case "HINFO":
		return QTypeHINFO
	case "MINFO":
		return QTypeMINFO
	case "MX":
		return QTypeMX
	case "TXT":
		return QTypeTXT
	case "AXFR":
		return QTypeAXFR
	case "MAILB":
		return QTypeMAILB
	case "MAILA":
		return QTypeMAILA
	case "ANY":
		return QTypeANY
	default:
		return 0
	}
}
