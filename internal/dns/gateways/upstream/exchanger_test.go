package upstream

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandns/fandns/internal/dns/domain"
	"github.com/fandns/fandns/internal/dns/wire"
)

// fakeConn is an in-memory net.Conn whose reply is computed from the bytes
// written to it.
type fakeConn struct {
	respond func(query []byte) []byte
	readErr error
	pending []byte
	wrote   bool
}

func (c *fakeConn) Write(b []byte) (int, error) {
	if c.respond != nil {
		c.pending = c.respond(b)
	}
	c.wrote = true
	return len(b), nil
}

func (c *fakeConn) Read(b []byte) (int, error) {
	if c.readErr != nil {
		return 0, c.readErr
	}
	n := copy(b, c.pending)
	return n, nil
}

func (c *fakeConn) Close() error                       { return nil }
func (c *fakeConn) LocalAddr() net.Addr                { return &net.UDPAddr{} }
func (c *fakeConn) RemoteAddr() net.Addr               { return &net.UDPAddr{} }
func (c *fakeConn) SetDeadline(t time.Time) error      { return nil }
func (c *fakeConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

func dialTo(conn net.Conn) DialFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		return conn, nil
	}
}

func testRequest(id uint16) domain.Request {
	return domain.Request{
		Header: domain.Header{
			ID:               id,
			RecursionDesired: true,
			QuestionCount:    1,
		},
		Questions: []domain.Question{
			{Name: domain.Name{"example", "com"}, Type: domain.QTypeA, Class: domain.QClassIN},
		},
	}
}

// echoReply decodes the forwarded query and answers it with one A record
// under the same ID.
func echoReply(query []byte) []byte {
	req, err := wire.DecodeRequest(query)
	if err != nil {
		panic(err)
	}
	q := req.Questions[0]
	h := req.Header
	h.IsResponse = true
	h.RecursionAvailable = true
	h.AnswerCount = 1
	return wire.EncodeReply(domain.Reply{
		Header:    h,
		Questions: req.Questions,
		Answers: []domain.ResourceRecord{
			{Name: q.Name, Type: q.Type, Class: q.Class, TTL: 60, Data: []byte{192, 0, 2, 1}},
		},
	})
}

func TestNewDefaults(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err, "address is required")

	e, err := New(Options{Address: "1.1.1.1:53"})
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, e.timeout)
	assert.NotNil(t, e.dial)
}

func TestExchange(t *testing.T) {
	conn := &fakeConn{respond: echoReply}
	e, err := New(Options{Address: "198.51.100.1:53", Dial: dialTo(conn)})
	require.NoError(t, err)

	req := testRequest(0xABCD)
	rep, err := e.Exchange(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, conn.wrote)
	assert.Equal(t, req.Header.ID, rep.Header.ID)
	assert.True(t, rep.Header.IsResponse)
	require.Len(t, rep.Answers, 1)
	assert.Equal(t, []byte{192, 0, 2, 1}, rep.Answers[0].Data)
}

func TestExchangeDialFailure(t *testing.T) {
	dial := func(ctx context.Context, network, address string) (net.Conn, error) {
		return nil, errors.New("network unreachable")
	}
	e, err := New(Options{Address: "198.51.100.1:53", Dial: dial})
	require.NoError(t, err)

	_, err = e.Exchange(context.Background(), testRequest(1))
	assert.ErrorIs(t, err, ErrUpstreamFailure)
}

func TestExchangeReadFailure(t *testing.T) {
	conn := &fakeConn{readErr: errors.New("i/o timeout")}
	e, err := New(Options{Address: "198.51.100.1:53", Dial: dialTo(conn)})
	require.NoError(t, err)

	_, err = e.Exchange(context.Background(), testRequest(1))
	assert.ErrorIs(t, err, ErrUpstreamFailure)
}

func TestExchangeMalformedReply(t *testing.T) {
	conn := &fakeConn{respond: func([]byte) []byte {
		return []byte{0x00, 0x01, 0x02} // shorter than a header
	}}
	e, err := New(Options{Address: "198.51.100.1:53", Dial: dialTo(conn)})
	require.NoError(t, err)

	_, err = e.Exchange(context.Background(), testRequest(1))
	assert.ErrorIs(t, err, ErrUpstreamFailure)
	assert.ErrorIs(t, err, wire.ErrMalformedHeader)
}

func TestExchangeIDMismatch(t *testing.T) {
	conn := &fakeConn{respond: func(query []byte) []byte {
		reply := echoReply(query)
		reply[0] ^= 0xFF // corrupt the ID
		return reply
	}}
	e, err := New(Options{Address: "198.51.100.1:53", Dial: dialTo(conn)})
	require.NoError(t, err)

	_, err = e.Exchange(context.Background(), testRequest(0x1234))
	assert.ErrorIs(t, err, ErrUpstreamFailure)
}

func TestExchangeContextCancelled(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	conn := &blockingConn{unblock: block}
	e, err := New(Options{Address: "198.51.100.1:53", Dial: dialTo(conn)})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = e.Exchange(ctx, testRequest(1))
	assert.ErrorIs(t, err, ErrUpstreamFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// blockingConn never produces a reply until unblocked.
type blockingConn struct {
	fakeConn
	unblock chan struct{}
}

func (c *blockingConn) Read(b []byte) (int, error) {
	<-c.unblock
	return 0, errors.New("connection closed")
}
