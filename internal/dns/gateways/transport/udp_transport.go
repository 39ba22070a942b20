// Package transport binds the UDP socket and moves datagrams between the
// network and the resolver-proxy service. It owns all socket lifecycle;
// the service layer only ever sees parsed messages.
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/fandns/fandns/internal/dns/common/log"
	"github.com/fandns/fandns/internal/dns/services/proxy"
	"github.com/fandns/fandns/internal/dns/wire"
)

// maxDatagramSize is the RFC 1035 UDP message size limit.
const maxDatagramSize = 512

// UDPTransport serves DNS over UDP. Datagrams are processed one at a time,
// synchronously, in arrival order.
type UDPTransport struct {
	addr   string
	conn   *net.UDPConn
	logger log.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
}

// NewUDPTransport creates a transport that will bind to addr.
func NewUDPTransport(addr string, logger log.Logger) *UDPTransport {
	return &UDPTransport{
		addr:   addr,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start binds the UDP socket and begins the receive loop.
func (t *UDPTransport) Start(ctx context.Context, handler proxy.Responder) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("UDP transport already running")
	}

	udpAddr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address %s: %w", t.addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket on %s: %w", t.addr, err)
	}

	t.conn = conn
	t.running = true

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   conn.LocalAddr().String(),
	}, "DNS transport started")

	go t.serveLoop(ctx, handler)
	return nil
}

// Stop closes the socket and ends the receive loop.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}
	close(t.stopCh)

	var closeErr error
	if t.conn != nil {
		closeErr = t.conn.Close()
	}
	t.running = false

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   t.addr,
	}, "DNS transport stopped")
	return closeErr
}

// Address returns the bound socket address, or the configured address if
// the transport is not running.
func (t *UDPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.conn != nil {
		return t.conn.LocalAddr().String()
	}
	return t.addr
}

// serveLoop receives and handles datagrams until stopped. Handling is
// deliberately sequential: one datagram is fully answered before the next
// is read.
func (t *UDPTransport) serveLoop(ctx context.Context, handler proxy.Responder) {
	buf := make([]byte, maxDatagramSize)
	for {
		select {
		case <-ctx.Done():
			t.logger.Debug(nil, "UDP transport stopping due to context cancellation")
			return
		case <-t.stopCh:
			t.logger.Debug(nil, "UDP transport stopping due to stop signal")
			return
		default:
			n, clientAddr, err := t.conn.ReadFromUDP(buf)
			if err != nil {
				t.mu.RLock()
				running := t.running
				t.mu.RUnlock()
				if !running {
					return
				}
				t.logger.Warn(map[string]any{
					"error": err.Error(),
				}, "Failed to read UDP packet")
				continue
			}
			t.handleDatagram(ctx, buf[:n], clientAddr, handler)
		}
	}
}

// handleDatagram decodes one datagram, hands it to the responder, and sends
// the encoded reply back. Malformed datagrams are logged and dropped; the
// codec never attempts partial recovery.
func (t *UDPTransport) handleDatagram(ctx context.Context, data []byte, clientAddr *net.UDPAddr, handler proxy.Responder) {
	req, err := wire.DecodeRequest(data)
	if err != nil {
		t.logger.Warn(map[string]any{
			"client": clientAddr.String(),
			"size":   len(data),
			"error":  err.Error(),
		}, "Dropping malformed DNS query")
		return
	}

	t.logger.Debug(map[string]any{
		"client":    clientAddr.String(),
		"id":        req.Header.ID,
		"questions": len(req.Questions),
	}, "Received DNS query")

	rep := handler.HandleRequest(ctx, req)
	out := wire.EncodeReply(rep)

	if _, err := t.conn.WriteToUDP(out, clientAddr); err != nil {
		t.logger.Error(map[string]any{
			"client": clientAddr.String(),
			"id":     rep.Header.ID,
			"error":  err.Error(),
		}, "Failed to send DNS response")
		return
	}

	t.logger.Debug(map[string]any{
		"client":  clientAddr.String(),
		"id":      rep.Header.ID,
		"rcode":   rep.Header.ResponseCode.String(),
		"answers": len(rep.Answers),
		"size":    len(out),
	}, "Sent DNS response")
}
