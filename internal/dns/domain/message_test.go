package domain

import "testing"

func TestRequestValidate(t *testing.T) {
	question := Question{Name: Name{"example", "com"}, Type: QTypeA, Class: QClassIN}

	tests := []struct {
		name        string
		request     Request
		expectError bool
	}{
		{
			name: "well formed",
			request: Request{
				Header:    Header{ID: 1, QuestionCount: 1},
				Questions: []Question{question},
			},
		},
		{
			name: "response bit set",
			request: Request{
				Header:    Header{ID: 1, IsResponse: true, QuestionCount: 1},
				Questions: []Question{question},
			},
			expectError: true,
		},
		{
			name: "count mismatch",
			request: Request{
				Header:    Header{ID: 1, QuestionCount: 2},
				Questions: []Question{question},
			},
			expectError: true,
		},
		{
			name: "invalid question",
			request: Request{
				Header:    Header{ID: 1, QuestionCount: 1},
				Questions: []Question{{Name: Name{"example"}, Type: QType(99), Class: QClassIN}},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestReplyValidate(t *testing.T) {
	question := Question{Name: Name{"example", "com"}, Type: QTypeA, Class: QClassIN}
	answer := ResourceRecord{
		Name:  question.Name,
		Type:  QTypeA,
		Class: QClassIN,
		TTL:   300,
		Data:  []byte{192, 0, 2, 1},
	}

	tests := []struct {
		name        string
		reply       Reply
		expectError bool
	}{
		{
			name: "well formed",
			reply: Reply{
				Header:    Header{ID: 1, IsResponse: true, QuestionCount: 1, AnswerCount: 1},
				Questions: []Question{question},
				Answers:   []ResourceRecord{answer},
			},
		},
		{
			name: "response bit clear",
			reply: Reply{
				Header:    Header{ID: 1, QuestionCount: 1, AnswerCount: 1},
				Questions: []Question{question},
				Answers:   []ResourceRecord{answer},
			},
			expectError: true,
		},
		{
			name: "answer count mismatch",
			reply: Reply{
				Header:    Header{ID: 1, IsResponse: true, QuestionCount: 1, AnswerCount: 2},
				Questions: []Question{question},
				Answers:   []ResourceRecord{answer},
			},
			expectError: true,
		},
		{
			name: "question count mismatch",
			reply: Reply{
				Header:    Header{ID: 1, IsResponse: true, QuestionCount: 0, AnswerCount: 1},
				Questions: []Question{question},
				Answers:   []ResourceRecord{answer},
			},
			expectError: true,
		},
		{
			name: "invalid answer",
			reply: Reply{
				Header:    Header{ID: 1, IsResponse: true, QuestionCount: 1, AnswerCount: 1},
				Questions: []Question{question},
				Answers:   []ResourceRecord{{Name: question.Name, Type: QType(99), Class: QClassIN}},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reply.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestHeaderValidate(t *testing.T) {
	if err := (Header{ID: 7, OpCode: OpCodeQuery, ResponseCode: RCodeNoError, ReservedZ: 7}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Header{ReservedZ: 8}).Validate(); err == nil {
		t.Error("expected error for Z field wider than 3 bits")
	}
	if err := (Header{OpCode: OpCode(9)}).Validate(); err == nil {
		t.Error("expected error for non-canonical opcode")
	}
	if err := (Header{ResponseCode: RCode(15)}).Validate(); err == nil {
		t.Error("expected error for non-canonical rcode")
	}
}
