package logger

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(WithOutput(buf), WithLevel(level), WithColors(false))
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DEBUG,
		" INFO ":  INFO,
		"warning": WARN,
		"Error":   ERROR,
		"verbose": INFO,
		"":        INFO,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, WARN)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  ")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "shown 2")
	assert.True(t, l.Enabled(ERROR))
	assert.False(t, l.Enabled(INFO))
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG).WithPrefix("session_repo").WithFields(map[string]any{"b": 2, "a": "x"})

	l.Info("saved %s", "run")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "2024-05-01 12:00:00.000 INFO  [session_repo] [logger_test.go:"), line)
	assert.True(t, strings.HasSuffix(line, "saved run a=x b=2\n"), line)
}

func TestLogger_DerivedLoggersAreIndependent(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, DEBUG)
	child := base.WithField("request_id", "r1")

	base.Info("plain")
	child.Info("tagged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "request_id")
	assert.Contains(t, lines[1], "request_id=r1")
}

func TestLogger_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, DEBUG)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			base.WithField("worker_id", id).Info("tick")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Contains(t, line, "tick worker_id=")
	}
}

func TestLogger_Writer(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG)

	n, err := l.Writer(WARN).Write([]byte("http: TLS handshake error\nsecond line\n"))
	require.NoError(t, err)
	assert.Equal(t, len("http: TLS handshake error\nsecond line\n"), n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN")
	assert.Contains(t, lines[0], "http: TLS handshake error")
}

func TestContext(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG)
	assert.Same(t, l, FromContext(NewContext(context.Background(), l)))
}
