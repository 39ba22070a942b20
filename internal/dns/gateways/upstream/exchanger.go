// Package upstream forwards single-question DNS requests to a configured
// upstream resolver over UDP and returns the parsed reply.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/fandns/fandns/internal/dns/common/log"
	"github.com/fandns/fandns/internal/dns/domain"
	"github.com/fandns/fandns/internal/dns/services/proxy"
	"github.com/fandns/fandns/internal/dns/wire"
)

// ErrUpstreamFailure classifies every forwarding-path failure: unreachable
// server, timeout, or a malformed or mismatched upstream reply. Callers map
// it to a ServerFailure reply at the boundary.
var ErrUpstreamFailure = errors.New("upstream failure")

// maxReplySize is the RFC 1035 UDP message size limit.
const maxReplySize = 512

// defaultTimeout bounds each sub-query round trip when the caller's context
// carries no deadline.
const defaultTimeout = 5 * time.Second

// DialFunc establishes a network connection. Injectable for tests.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Exchanger sends one encoded single-question request per round trip to a
// fixed upstream address and decodes the raw reply bytes.
type Exchanger struct {
	address string
	timeout time.Duration
	dial    DialFunc
	logger  log.Logger
}

// Options configures an Exchanger. Address is required; Timeout defaults to
// five seconds, Dial to a plain net.Dialer.
type Options struct {
	Address string
	Timeout time.Duration
	Dial    DialFunc
	Logger  log.Logger
}

// New constructs an Exchanger for the given upstream address.
func New(opts Options) (*Exchanger, error) {
	if opts.Address == "" {
		return nil, fmt.Errorf("upstream address is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Exchanger{
		address: opts.Address,
		timeout: opts.Timeout,
		dial:    opts.Dial,
		logger:  opts.Logger,
	}, nil
}

// Exchange forwards req and awaits the reply. The round trip is bounded by
// the context deadline, or by the exchanger's timeout when the context has
// none. All failures wrap ErrUpstreamFailure.
func (e *Exchanger) Exchange(ctx context.Context, req domain.Request) (domain.Reply, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	conn, err := e.dial(ctx, "udp", e.address)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("%w: connect to %s: %w", ErrUpstreamFailure, e.address, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	payload := wire.EncodeRequest(req)

	type result struct {
		reply domain.Reply
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		if _, err := conn.Write(payload); err != nil {
			resultCh <- result{err: fmt.Errorf("%w: write: %w", ErrUpstreamFailure, err)}
			return
		}
		buf := make([]byte, maxReplySize)
		n, err := conn.Read(buf)
		if err != nil {
			resultCh <- result{err: fmt.Errorf("%w: read: %w", ErrUpstreamFailure, err)}
			return
		}
		rep, err := wire.DecodeReply(buf[:n])
		if err != nil {
			resultCh <- result{err: fmt.Errorf("%w: decode reply: %w", ErrUpstreamFailure, err)}
			return
		}
		if rep.Header.ID != req.Header.ID {
			resultCh <- result{err: fmt.Errorf("%w: reply ID %d does not match request ID %d",
				ErrUpstreamFailure, rep.Header.ID, req.Header.ID)}
			return
		}
		resultCh <- result{reply: rep}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return domain.Reply{}, res.err
		}
		e.logger.Debug(map[string]any{
			"server":  e.address,
			"id":      req.Header.ID,
			"answers": len(res.reply.Answers),
		}, "Upstream exchange completed")
		return res.reply, nil
	case <-ctx.Done():
		return domain.Reply{}, fmt.Errorf("%w: %w", ErrUpstreamFailure, ctx.Err())
	}
}

var _ proxy.Exchanger = (*Exchanger)(nil)
