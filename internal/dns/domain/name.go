package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLabelLength is the longest label the wire format can carry: the top two
// bits of the length byte are reserved for compression pointers.
const MaxLabelLength = 63

// Label is one dot-separated component of a domain name. The wire format
// stores it with an explicit length prefix; in memory it is just the text.
type Label string

// Validate checks the label against the wire format constraints.
func (l Label) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("label must not be empty")
	}
	if len(l) > MaxLabelLength {
		return fmt.Errorf("label too long: %d bytes (max %d)", len(l), MaxLabelLength)
	}
	if !utf8.ValidString(string(l)) {
		return fmt.Errorf("label is not valid UTF-8: %q", string(l))
	}
	return nil
}

// Name is an ordered sequence of labels. It is a list, not a string: the
// wire terminator is implicit and there is no trailing-dot representation.
type Name []Label

// ParseName splits a dotted domain name into labels. A trailing dot is
// accepted and ignored. The empty string parses to the root (empty) name.
func ParseName(s string) (Name, error) {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return Name{}, nil
	}
	parts := strings.Split(s, ".")
	name := make(Name, 0, len(parts))
	for _, p := range parts {
		l := Label(p)
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("invalid name %q: %w", s, err)
		}
		name = append(name, l)
	}
	return name, nil
}

// Validate checks every label in the name.
func (n Name) Validate() error {
	for i, l := range n {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("label %d: %w", i, err)
		}
	}
	return nil
}

// String returns the dotted representation without a trailing dot.
func (n Name) String() string {
	parts := make([]string, len(n))
	for i, l := range n {
		parts[i] = string(l)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two names have identical labels.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a case-folded form suitable for cache and table keys.
func (n Name) Key() string {
	return strings.ToLower(n.String())
}
