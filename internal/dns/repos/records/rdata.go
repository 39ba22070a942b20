package records

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/fandns/fandns/internal/dns/domain"
	"github.com/fandns/fandns/internal/dns/wire"
)

// buildRData converts a record's presentation value into its wire-encoded
// RDATA payload for the supported record types.
func buildRData(t domain.QType, value string) ([]byte, error) {
	switch t {
	case domain.QTypeA:
		return buildARData(value)
	case domain.QTypeCNAME, domain.QTypeNS, domain.QTypePTR:
		return buildNameRData(value)
	case domain.QTypeTXT:
		return buildTXTRData(value)
	case domain.QTypeMX:
		return buildMXRData(value)
	default:
		return nil, fmt.Errorf("unsupported record type %s", t)
	}
}

// buildARData encodes an IPv4 address as the 4-byte A payload.
func buildARData(value string) ([]byte, error) {
	ip := net.ParseIP(strings.TrimSpace(value))
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("invalid IPv4 address %q", value)
	}
	return ip.To4(), nil
}

// buildNameRData encodes a domain name payload (CNAME, NS, PTR) in
// uncompressed wire form.
func buildNameRData(value string) ([]byte, error) {
	name, err := domain.ParseName(value)
	if err != nil {
		return nil, err
	}
	return wire.EncodeName(name), nil
}

// buildTXTRData encodes text as length-prefixed character-strings of at
// most 255 bytes each.
func buildTXTRData(value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("empty TXT value")
	}
	var out []byte
	for len(value) > 0 {
		chunk := value
		if len(chunk) > 255 {
			chunk = chunk[:255]
		}
		out = append(out, byte(len(chunk)))
		out = append(out, chunk...)
		value = value[len(chunk):]
	}
	return out, nil
}

// buildMXRData encodes a "preference exchange" pair, e.g. "10 mail.example.com".
func buildMXRData(value string) ([]byte, error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return nil, fmt.Errorf("MX value %q must be \"preference exchange\"", value)
	}
	pref, err := strconv.ParseUint(fields[0], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid MX preference %q: %w", fields[0], err)
	}
	exchange, err := buildNameRData(fields[1])
	if err != nil {
		return nil, err
	}
	out := binary.BigEndian.AppendUint16(nil, uint16(pref))
	return append(out, exchange...), nil
}
