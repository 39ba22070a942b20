package domain

import "testing"

func TestNewQuestion(t *testing.T) {
	tests := []struct {
		name        string
		qname       Name
		qtype       QType
		qclass      QClass
		expectError bool
	}{
		{"a record", Name{"example", "com"}, QTypeA, QClassIN, false},
		{"any query", Name{"example", "com"}, QTypeANY, QClassANY, false},
		{"root name", Name{}, QTypeNS, QClassIN, false},
		{"bad qtype", Name{"example", "com"}, QType(28), QClassIN, true},
		{"bad qclass", Name{"example", "com"}, QTypeA, QClass(9), true},
		{"bad label", Name{""}, QTypeA, QClassIN, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuestion(tt.qname, tt.qtype, tt.qclass)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got %+v", q)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !q.Name.Equal(tt.qname) || q.Type != tt.qtype || q.Class != tt.qclass {
				t.Errorf("NewQuestion returned %+v", q)
			}
		})
	}
}

func TestQuestionCacheKey(t *testing.T) {
	a := Question{Name: Name{"WWW", "Example", "COM"}, Type: QTypeA, Class: QClassIN}
	b := Question{Name: Name{"www", "example", "com"}, Type: QTypeA, Class: QClassIN}
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("cache keys differ for case-variant names: %q vs %q", a.CacheKey(), b.CacheKey())
	}

	c := Question{Name: b.Name, Type: QTypeMX, Class: QClassIN}
	if b.CacheKey() == c.CacheKey() {
		t.Error("cache keys collide across qtypes")
	}

	d := Question{Name: b.Name, Type: QTypeA, Class: QClassCH}
	if b.CacheKey() == d.CacheKey() {
		t.Error("cache keys collide across qclasses")
	}
}
