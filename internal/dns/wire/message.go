package wire

import (
	"fmt"

	"github.com/fandns/fandns/internal/dns/domain"
)

// DecodeRequest parses a full query message: header, then QuestionCount
// questions. A message whose QR bit says response fails with
// ErrWrongDirection. The header counts bound how many entries are read;
// counts that overrun the buffer surface as ErrUnexpectedEOF.
func DecodeRequest(data []byte) (domain.Request, error) {
	if len(data) < HeaderLength {
		return domain.Request{}, fmt.Errorf("%w: message of %d bytes is shorter than the header", ErrMalformedHeader, len(data))
	}
	h, err := DecodeHeader(data[:HeaderLength])
	if err != nil {
		return domain.Request{}, err
	}
	if h.IsResponse {
		return domain.Request{}, fmt.Errorf("%w: expected a query, QR bit says response", ErrWrongDirection)
	}
	questions, _, err := decodeQuestions(data, HeaderLength, h.QuestionCount)
	if err != nil {
		return domain.Request{}, err
	}
	return domain.Request{Header: h, Questions: questions}, nil
}

// DecodeReply parses a full response message: header, QuestionCount
// questions, then AnswerCount records. A message whose QR bit says query
// fails with ErrWrongDirection. Authority and additional section bytes are
// left unparsed; their counts remain visible in the header.
func DecodeReply(data []byte) (domain.Reply, error) {
	if len(data) < HeaderLength {
		return domain.Reply{}, fmt.Errorf("%w: message of %d bytes is shorter than the header", ErrMalformedHeader, len(data))
	}
	h, err := DecodeHeader(data[:HeaderLength])
	if err != nil {
		return domain.Reply{}, err
	}
	if !h.IsResponse {
		return domain.Reply{}, fmt.Errorf("%w: expected a response, QR bit says query", ErrWrongDirection)
	}
	questions, pos, err := decodeQuestions(data, HeaderLength, h.QuestionCount)
	if err != nil {
		return domain.Reply{}, err
	}
	answers := make([]domain.ResourceRecord, 0, h.AnswerCount)
	for i := 0; i < int(h.AnswerCount); i++ {
		rr, next, err := decodeRecord(data, pos)
		if err != nil {
			return domain.Reply{}, fmt.Errorf("answer %d: %w", i, err)
		}
		answers = append(answers, rr)
		pos = next
	}
	return domain.Reply{Header: h, Questions: questions, Answers: answers}, nil
}

// decodeQuestions reads count question entries starting at off.
func decodeQuestions(data []byte, off int, count uint16) ([]domain.Question, int, error) {
	questions := make([]domain.Question, 0, count)
	pos := off
	for i := 0; i < int(count); i++ {
		q, next, err := decodeQuestion(data, pos)
		if err != nil {
			return nil, 0, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
		pos = next
	}
	return questions, pos, nil
}

// EncodeRequest serializes req: header bytes, then each question in order.
// Encoding is total for structurally valid values and never compresses
// names.
func EncodeRequest(req domain.Request) []byte {
	out := AppendHeader(make([]byte, 0, HeaderLength+len(req.Questions)*32), req.Header)
	for _, q := range req.Questions {
		out = AppendQuestion(out, q)
	}
	return out
}

// EncodeReply serializes rep: header bytes, each question, then each answer,
// all in order. Unparsed authority/additional sections are emitted as empty
// regardless of their header counts.
func EncodeReply(rep domain.Reply) []byte {
	out := AppendHeader(make([]byte, 0, HeaderLength+len(rep.Questions)*32+len(rep.Answers)*48), rep.Header)
	for _, q := range rep.Questions {
		out = AppendQuestion(out, q)
	}
	for _, rr := range rep.Answers {
		out = AppendRecord(out, rr)
	}
	return out
}
