// Package records provides the static answer table backing local reply
// synthesis. Tables are loaded from YAML, JSON, or TOML files mapping
// labels to record types and values; questions that miss the table fall
// back to a fixed configured answer so synthesis always yields one answer
// per question.
package records

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/fandns/fandns/internal/dns/domain"
	"github.com/fandns/fandns/internal/dns/services/proxy"
)

// answer is one preassembled rdata payload with its ttl.
type answer struct {
	data []byte
	ttl  uint32
}

// Store maps name|type keys to preassembled answers. It is populated once
// at startup and read-only afterwards, so lookups need no locking.
type Store struct {
	entries  map[string][]answer
	fallback answer
}

// Options configures the fallback answer used for table misses.
// FallbackAddress must be an IPv4 address.
type Options struct {
	FallbackAddress string
	FallbackTTL     uint32
}

// New constructs an empty Store with the given fallback.
func New(opts Options) (*Store, error) {
	if opts.FallbackAddress == "" {
		opts.FallbackAddress = "127.0.0.1"
	}
	if opts.FallbackTTL == 0 {
		opts.FallbackTTL = 300
	}
	ip := net.ParseIP(opts.FallbackAddress)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("fallback address %q is not IPv4", opts.FallbackAddress)
	}
	return &Store{
		entries:  make(map[string][]answer),
		fallback: answer{data: ip.To4(), ttl: opts.FallbackTTL},
	}, nil
}

// LoadDirectory walks dir and loads every supported record file in it.
// Unsupported extensions are skipped; a file that fails to parse fails the
// whole load.
func (s *Store) LoadDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if parserFor(path) == nil {
			return nil
		}
		if err := s.LoadFile(path); err != nil {
			return fmt.Errorf("error loading record file %s: %w", path, err)
		}
		return nil
	})
}

// LoadFile loads one record file into the store. The file format is a zone
// root plus a label map:
//
//	zone: example.com
//	ttl: 300
//	records:
//	  www:
//	    A: ["192.0.2.1"]
//	  "@":
//	    MX: ["10 mail.example.com"]
func (s *Store) LoadFile(path string) error {
	parser := parserFor(path)
	if parser == nil {
		return fmt.Errorf("unsupported record file extension %q", filepath.Ext(path))
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return err
	}

	zone := strings.TrimSuffix(strings.TrimSpace(k.String("zone")), ".")
	if zone == "" {
		return fmt.Errorf("missing zone root")
	}
	ttl := s.fallback.ttl
	if k.Exists("ttl") {
		fileTTL := k.Int64("ttl")
		if fileTTL <= 0 || fileTTL > int64(^uint32(0)) {
			return fmt.Errorf("invalid ttl %d", fileTTL)
		}
		ttl = uint32(fileTTL)
	}

	labels, ok := k.Get("records").(map[string]any)
	if !ok {
		return fmt.Errorf("missing records map")
	}
	for label, v := range labels {
		typed, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("label %q: expected a type map", label)
		}
		fqdn := expandName(label, zone)
		for typeName, raw := range typed {
			qtype := domain.QTypeFromString(strings.ToUpper(typeName))
			if !qtype.IsValid() {
				return fmt.Errorf("label %q: unknown record type %q", label, typeName)
			}
			for _, value := range stringValues(raw) {
				data, err := buildRData(qtype, value)
				if err != nil {
					return fmt.Errorf("label %q: %w", label, err)
				}
				s.add(fqdn, qtype, answer{data: data, ttl: ttl})
			}
		}
	}
	return nil
}

// Lookup returns the rdata and ttl for a question, falling back to the
// fixed answer on a miss. The table is keyed by name and type only; class
// is assumed IN.
func (s *Store) Lookup(q domain.Question) ([]byte, uint32) {
	if answers, ok := s.entries[key(q.Name.Key(), q.Type)]; ok && len(answers) > 0 {
		return answers[0].data, answers[0].ttl
	}
	return s.fallback.data, s.fallback.ttl
}

// Len returns the number of distinct name|type entries in the table.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) add(fqdn string, t domain.QType, a answer) {
	k := key(strings.ToLower(fqdn), t)
	s.entries[k] = append(s.entries[k], a)
}

func key(name string, t domain.QType) string {
	return name + "|" + t.String()
}

// expandName turns a record label into a fully qualified name: "@" is the
// zone root, names with a trailing dot are absolute, anything else is
// relative to the root.
func expandName(label, root string) string {
	if label == "@" {
		return root
	}
	if strings.HasSuffix(label, ".") {
		return strings.TrimSuffix(label, ".")
	}
	return label + "." + root
}

// stringValues normalizes a parsed value (scalar or list) to a slice of
// non-empty strings.
func stringValues(raw any) []string {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

// parserFor returns the koanf parser for a record file path, or nil if the
// extension is unsupported.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return nil
	}
}

var _ proxy.AnswerSource = (*Store)(nil)
