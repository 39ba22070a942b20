package proxy

import (
	"context"

	"github.com/fandns/fandns/internal/dns/domain"
)

// AnswerSource supplies the rdata and ttl for a locally synthesized answer.
// It stands in for a real record store or resolver: implementations range
// from a fixed placeholder to a static table loaded from disk. Lookup must
// always produce a payload so synthesis yields one answer per question.
type AnswerSource interface {
	Lookup(q domain.Question) (data []byte, ttl uint32)
}

// AnswerFunc adapts a plain function to the AnswerSource interface.
type AnswerFunc func(q domain.Question) ([]byte, uint32)

func (f AnswerFunc) Lookup(q domain.Question) ([]byte, uint32) {
	return f(q)
}

// Exchanger forwards one single-question request to an upstream resolver
// and returns its parsed reply. It owns socket lifecycle, addressing, and
// the per-query timeout.
type Exchanger interface {
	Exchange(ctx context.Context, req domain.Request) (domain.Reply, error)
}

// ReplyCache stores answer sets from forwarded questions, keyed by the
// question's cache key. Implementations handle TTL expiry internally.
type ReplyCache interface {
	Get(key string) ([]domain.ResourceRecord, bool)
	Set(key string, answers []domain.ResourceRecord)
}

// Responder is the contract the server transport calls into: one parsed
// request in, one reply out. Failures are expressed inside the reply (for
// example ServerFailure), never by dropping the client's request.
type Responder interface {
	HandleRequest(ctx context.Context, req domain.Request) domain.Reply
}
