// Package proxy implements the resolver-proxy service: it answers parsed
// DNS requests either by synthesizing a local reply or by fanning a
// multi-question request out into single-question sub-queries, forwarding
// each upstream, and merging the sub-replies into one composite reply.
package proxy

import (
	"context"
	"errors"
	"fmt"

	"github.com/fandns/fandns/internal/dns/common/log"
	"github.com/fandns/fandns/internal/dns/domain"
)

// Merge policy errors. MergeReplies only composes single-question
// sub-replies; these report violated preconditions.
var (
	// ErrNoReplies is returned when MergeReplies receives an empty sequence.
	ErrNoReplies = errors.New("no replies to merge")
	// ErrMergeQuestionCount is returned when a sub-reply does not carry
	// exactly one question.
	ErrMergeQuestionCount = errors.New("sub-reply must carry exactly one question")
)

// Proxy answers DNS requests. With an Exchanger configured it operates in
// forwarding mode; without one every request is answered locally from the
// AnswerSource.
type Proxy struct {
	source   AnswerSource
	upstream Exchanger
	cache    ReplyCache
	logger   log.Logger
}

// Options configures a Proxy. Source is required. Upstream is optional and
// selects forwarding mode when present. Cache is optional and only consulted
// in forwarding mode.
type Options struct {
	Source   AnswerSource
	Upstream Exchanger
	Cache    ReplyCache
	Logger   log.Logger
}

// New constructs a Proxy from the given options.
func New(opts Options) (*Proxy, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("answer source is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Proxy{
		source:   opts.Source,
		upstream: opts.Upstream,
		cache:    opts.Cache,
		logger:   opts.Logger,
	}, nil
}

// HandleRequest answers one request. In forwarding mode any sub-query
// failure degrades to a ServerFailure reply so the client always gets an
// answer for its original request.
func (p *Proxy) HandleRequest(ctx context.Context, req domain.Request) domain.Reply {
	if p.upstream == nil {
		return SynthesizeReply(req, p.source)
	}
	return p.forward(ctx, req)
}

// forward fans the request out one sub-query per question, sequentially,
// and merges the sub-replies. The upstream exchanger applies the per-query
// timeout.
func (p *Proxy) forward(ctx context.Context, req domain.Request) domain.Reply {
	subs := SplitQuestions(req)
	replies := make([]domain.Reply, 0, len(subs))
	for _, sub := range subs {
		q := sub.Questions[0]
		if answers, ok := p.cachedAnswers(q); ok {
			replies = append(replies, replyForQuestion(sub, answers))
			continue
		}
		rep, err := p.upstream.Exchange(ctx, sub)
		if err != nil {
			p.logger.Warn(map[string]any{
				"id":    req.Header.ID,
				"name":  q.Name.String(),
				"type":  q.Type.String(),
				"error": err.Error(),
			}, "Upstream exchange failed")
			return FailureReply(req)
		}
		if p.cache != nil && len(rep.Answers) > 0 {
			p.cache.Set(q.CacheKey(), rep.Answers)
		}
		replies = append(replies, rep)
	}
	merged, err := MergeReplies(replies)
	if err != nil {
		p.logger.Error(map[string]any{
			"id":    req.Header.ID,
			"error": err.Error(),
		}, "Failed to merge upstream replies")
		return FailureReply(req)
	}
	return merged
}

// cachedAnswers consults the reply cache for one question.
func (p *Proxy) cachedAnswers(q domain.Question) ([]domain.ResourceRecord, bool) {
	if p.cache == nil {
		return nil, false
	}
	answers, ok := p.cache.Get(q.CacheKey())
	if ok {
		p.logger.Debug(map[string]any{
			"name": q.Name.String(),
			"type": q.Type.String(),
		}, "Answering question from cache")
	}
	return answers, ok
}

// SynthesizeReply builds a local reply for req: the header is copied with
// the response bit forced on, the server-side flags cleared, and the
// response code set to NoError for standard queries or NotImplemented for
// anything else. One answer is built per question by copying the question's
// name, type, and class and filling ttl/rdata from the answer source.
func SynthesizeReply(req domain.Request, source AnswerSource) domain.Reply {
	h := req.Header
	h.IsResponse = true
	h.Authoritative = false
	h.Truncated = false
	h.RecursionAvailable = false
	h.ReservedZ = 0
	if req.Header.OpCode == domain.OpCodeQuery {
		h.ResponseCode = domain.RCodeNoError
	} else {
		h.ResponseCode = domain.RCodeNotImplemented
	}
	h.AnswerCount = h.QuestionCount
	h.AuthorityCount = 0
	h.AdditionalCount = 0

	answers := make([]domain.ResourceRecord, 0, len(req.Questions))
	for _, q := range req.Questions {
		data, ttl := source.Lookup(q)
		answers = append(answers, domain.ResourceRecord{
			Name:  q.Name,
			Type:  q.Type,
			Class: q.Class,
			TTL:   ttl,
			Data:  data,
		})
	}
	return domain.Reply{
		Header:    h,
		Questions: req.Questions,
		Answers:   answers,
	}
}

// SplitQuestions fans req out into one single-question request per
// question. Every copy shares the original ID and header flags with the
// question count forced to one.
func SplitQuestions(req domain.Request) []domain.Request {
	subs := make([]domain.Request, 0, len(req.Questions))
	for _, q := range req.Questions {
		h := req.Header
		h.QuestionCount = 1
		subs = append(subs, domain.Request{
			Header:    h,
			Questions: []domain.Question{q},
		})
	}
	return subs
}

// MergeReplies reassembles single-question sub-replies into one composite
// reply. The first reply's header is the base; the merged question count is
// the number of replies and the answer count is recomputed from the
// concatenated answers. Questions and answers keep their input order. An
// empty sequence or a sub-reply carrying other than exactly one question is
// an error.
func MergeReplies(replies []domain.Reply) (domain.Reply, error) {
	if len(replies) == 0 {
		return domain.Reply{}, ErrNoReplies
	}
	questions := make([]domain.Question, 0, len(replies))
	var answers []domain.ResourceRecord
	for i, rep := range replies {
		if len(rep.Questions) != 1 {
			return domain.Reply{}, fmt.Errorf("%w: reply %d has %d", ErrMergeQuestionCount, i, len(rep.Questions))
		}
		questions = append(questions, rep.Questions...)
		answers = append(answers, rep.Answers...)
	}
	h := replies[0].Header
	h.QuestionCount = uint16(len(replies))
	h.AnswerCount = uint16(len(answers))
	h.AuthorityCount = 0
	h.AdditionalCount = 0
	return domain.Reply{
		Header:    h,
		Questions: questions,
		Answers:   answers,
	}, nil
}

// FailureReply answers req with ServerFailure, echoing its questions so the
// client can correlate the refusal with what it asked.
func FailureReply(req domain.Request) domain.Reply {
	h := req.Header
	h.IsResponse = true
	h.Authoritative = false
	h.Truncated = false
	h.RecursionAvailable = false
	h.ReservedZ = 0
	h.ResponseCode = domain.RCodeServerFailure
	h.AnswerCount = 0
	h.AuthorityCount = 0
	h.AdditionalCount = 0
	return domain.Reply{
		Header:    h,
		Questions: req.Questions,
	}
}

// replyForQuestion rebuilds a single-question reply from cached answers.
func replyForQuestion(sub domain.Request, answers []domain.ResourceRecord) domain.Reply {
	h := sub.Header
	h.IsResponse = true
	h.RecursionAvailable = true
	h.ResponseCode = domain.RCodeNoError
	h.AnswerCount = uint16(len(answers))
	h.AuthorityCount = 0
	h.AdditionalCount = 0
	return domain.Reply{
		Header:    h,
		Questions: sub.Questions,
		Answers:   answers,
	}
}

var _ Responder = (*Proxy)(nil)
