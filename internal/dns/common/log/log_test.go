package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger records every call so tests can assert on routing.
type captureLogger struct {
	level  string
	fields map[string]any
	msg    string
}

func (c *captureLogger) record(level string, fields map[string]any, msg string) {
	c.level = level
	c.fields = fields
	c.msg = msg
}

func (c *captureLogger) Debug(fields map[string]any, msg string) { c.record("debug", fields, msg) }
func (c *captureLogger) Info(fields map[string]any, msg string)  { c.record("info", fields, msg) }
func (c *captureLogger) Warn(fields map[string]any, msg string)  { c.record("warn", fields, msg) }
func (c *captureLogger) Error(fields map[string]any, msg string) { c.record("error", fields, msg) }
func (c *captureLogger) Fatal(fields map[string]any, msg string) { c.record("fatal", fields, msg) }

func TestGlobalLoggerRouting(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	capture := &captureLogger{}
	SetLogger(capture)

	Info(map[string]any{"port": 2053}, "server started")
	assert.Equal(t, "info", capture.level)
	assert.Equal(t, "server started", capture.msg)
	assert.Equal(t, 2053, capture.fields["port"])

	Warn(nil, "something odd")
	assert.Equal(t, "warn", capture.level)

	Error(nil, "something broke")
	assert.Equal(t, "error", capture.level)

	Debug(nil, "detail")
	assert.Equal(t, "debug", capture.level)
}

func TestConfigure(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	require.NoError(t, Configure("prod", "info"))
	assert.NotNil(t, GetLogger())

	require.NoError(t, Configure("dev", "DEBUG"), "level parsing is case-insensitive")

	assert.Error(t, Configure("prod", "loud"))
}

func TestNoopLoggerDiscards(t *testing.T) {
	l := NewNoopLogger()
	// Must not panic or write anywhere.
	l.Debug(map[string]any{"k": "v"}, "debug")
	l.Info(nil, "info")
	l.Warn(nil, "warn")
	l.Error(nil, "error")
	l.Fatal(nil, "fatal")
}
