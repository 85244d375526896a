package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	mu      sync.Mutex
	results []error
	calls   int
}

func (s *scriptedClient) Provider() string { return "scripted" }

func (s *scriptedClient) Chat(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	s.calls++
	if idx < len(s.results) && s.results[idx] != nil {
		return "", s.results[idx]
	}
	return "ok", nil
}

func testConfig() *Config {
	cfg := &Config{
		RateLimit:      1000,
		Burst:          10,
		MaxRetries:     3,
		InitialBackoff: "1ms",
		MaxBackoff:     "2ms",
	}
	cfg.loadDefaults()
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusErr(code int) error {
	return &StatusError{Provider: "scripted", Status: code, Err: errors.New(http.StatusText(code))}
}

func TestResilientRetriesTransientErrors(t *testing.T) {
	next := &scriptedClient{results: []error{statusErr(429), statusErr(503)}}
	client := NewResilient(next, testConfig(), discard())

	out, err := client.Chat(context.Background(), Request{Messages: []Message{User("hi")}})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, next.calls)
}

func TestResilientDoesNotRetryPermanentErrors(t *testing.T) {
	next := &scriptedClient{results: []error{statusErr(400)}}
	client := NewResilient(next, testConfig(), discard())

	_, err := client.Chat(context.Background(), Request{})

	require.Error(t, err)
	assert.Equal(t, 1, next.calls)
	assert.False(t, errors.Is(err, ErrRetriesExhausted))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Status)
}

func TestResilientExhaustsRetries(t *testing.T) {
	next := &scriptedClient{results: []error{statusErr(500), statusErr(502), statusErr(503), statusErr(504), statusErr(503)}}
	client := NewResilient(next, testConfig(), discard())

	_, err := client.Chat(context.Background(), Request{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 4, next.calls, "one initial call plus max_retries retries")
	assert.ErrorContains(t, err, "after 4 attempts")
}

func TestResilientRecoversOnLastRetry(t *testing.T) {
	next := &scriptedClient{results: []error{statusErr(503), statusErr(503), statusErr(503)}}
	client := NewResilient(next, testConfig(), discard())

	out, err := client.Chat(context.Background(), Request{Messages: []Message{User("hi")}})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 4, next.calls)
}

func TestResilientStopsOnCancelledContext(t *testing.T) {
	next := &scriptedClient{}
	client := NewResilient(next, testConfig(), discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Chat(ctx, Request{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, next.calls)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", statusErr(429), true},
		{"server error", statusErr(500), true},
		{"bad gateway", statusErr(502), true},
		{"bad request", statusErr(400), false},
		{"unauthorized", statusErr(401), false},
		{"plain error", errors.New("boom"), false},
		{"wrapped", errors.Join(errors.New("ctx"), statusErr(503)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

type closingClient struct {
	scriptedClient
	closed bool
}

func (c *closingClient) Close() error {
	c.closed = true
	return nil
}

func TestResilientClose(t *testing.T) {
	inner := &closingClient{}
	r := NewResilient(inner, testConfig(), discard())
	require.NoError(t, r.Close())
	assert.True(t, inner.closed)

	plain := NewResilient(&scriptedClient{}, testConfig(), discard())
	assert.NoError(t, plain.Close())
}
