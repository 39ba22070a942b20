package domain

import "fmt"

// Question is one entry of the question section: a name to resolve plus the
// requested type and class.
type Question struct {
	Name  Name
	Type  QType
	Class QClass
}

// NewQuestion constructs a Question and validates its fields.
func NewQuestion(name Name, qtype QType, qclass QClass) (Question, error) {
	q := Question{
		Name:  name,
		Type:  qtype,
		Class: qclass,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally valid.
func (q Question) Validate() error {
	if err := q.Name.Validate(); err != nil {
		return fmt.Errorf("question name: %w", err)
	}
	if !q.Type.IsValid() {
		return fmt.Errorf("unsupported qtype: %d", q.Type)
	}
	if !q.Class.IsValid() {
		return fmt.Errorf("unsupported qclass: %d", q.Class)
	}
	return nil
}

// CacheKey returns a key derived from the question's name, type, and class.
// The message ID is deliberately excluded so identical questions share one
// cache entry.
func (q Question) CacheKey() string {
	return q.Name.Key() + "|" + q.Type.String() + "|" + q.Class.String()
}
