package domain

import "fmt"

// Request is a parsed DNS query message: a header plus its questions.
// The authority and additional sections of a query are not modeled.
type Request struct {
	Header    Header
	Questions []Question
}

// Validate checks the Request invariants: the QR bit must indicate a query
// and the header's question count must match the entries present.
func (r Request) Validate() error {
	if r.Header.IsResponse {
		return fmt.Errorf("request header has the response bit set")
	}
	if err := r.Header.Validate(); err != nil {
		return fmt.Errorf("request header: %w", err)
	}
	if int(r.Header.QuestionCount) != len(r.Questions) {
		return fmt.Errorf("question count %d does not match %d questions present",
			r.Header.QuestionCount, len(r.Questions))
	}
	for i, q := range r.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Reply is a parsed DNS response message: a header, the echoed questions,
// and the answer records. Authority and additional entries are not parsed;
// their header counts are preserved but their bytes are ignored on decode
// and never emitted on encode.
type Reply struct {
	Header    Header
	Questions []Question
	Answers   []ResourceRecord
}

// Validate checks the Reply invariants: the QR bit must indicate a response
// and the header's question and answer counts must match the entries present.
func (r Reply) Validate() error {
	if !r.Header.IsResponse {
		return fmt.Errorf("reply header has the response bit clear")
	}
	if err := r.Header.Validate(); err != nil {
		return fmt.Errorf("reply header: %w", err)
	}
	if int(r.Header.QuestionCount) != len(r.Questions) {
		return fmt.Errorf("question count %d does not match %d questions present",
			r.Header.QuestionCount, len(r.Questions))
	}
	if int(r.Header.AnswerCount) != len(r.Answers) {
		return fmt.Errorf("answer count %d does not match %d answers present",
			r.Header.AnswerCount, len(r.Answers))
	}
	for i, q := range r.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	for i, rr := range r.Answers {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("answer %d: %w", i, err)
		}
	}
	return nil
}
