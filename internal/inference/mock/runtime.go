// Package mock provides a scriptable inference runtime for tests and local
// development without AWS credentials.
package mock

import (
	"context"
	"io"
	"sync"

	"github.com/kiranshivaraju/chaosplan/internal/inference"
)

var defaultFragments = []string{
	"## Chaos Engineering Plan\n",
	"### Scenario 1: Pod Kill\n",
	"Terminate application pods and observe recovery.\n",
}

// Runtime implements inference.Runtime with overridable function fields.
// Unset fields fall back to canned responses, so the server can run with
// INFERENCE_PROVIDER=mock end to end.
type Runtime struct {
	Name_      string
	PingFunc   func(ctx context.Context, req inference.Request) error
	InvokeFunc func(ctx context.Context, req inference.Request) (string, error)
	StreamFunc func(ctx context.Context, req inference.Request) (inference.Stream, error)
}

func NewRuntime() *Runtime { return &Runtime{} }

func (r *Runtime) Name() string {
	if r.Name_ != "" {
		return r.Name_
	}
	return "mock"
}

func (r *Runtime) Ping(ctx context.Context, req inference.Request) error {
	if r.PingFunc != nil {
		return r.PingFunc(ctx, req)
	}
	return nil
}

func (r *Runtime) Invoke(ctx context.Context, req inference.Request) (string, error) {
	if r.InvokeFunc != nil {
		return r.InvokeFunc(ctx, req)
	}
	var out string
	for _, f := range defaultFragments {
		out += f
	}
	return out, nil
}

func (r *Runtime) InvokeStream(ctx context.Context, req inference.Request) (inference.Stream, error) {
	if r.StreamFunc != nil {
		return r.StreamFunc(ctx, req)
	}
	return NewScriptedStream(defaultFragments, nil), nil
}

// ScriptedStream replays a fixed sequence of fragments, then returns the
// configured terminal error or io.EOF. Safe for concurrent use.
type ScriptedStream struct {
	mu        sync.Mutex
	fragments []string
	next      int
	terminal  error
	closed    bool
}

// NewScriptedStream returns a stream that yields fragments in order and ends
// with terminal (nil means a clean io.EOF finish).
func NewScriptedStream(fragments []string, terminal error) *ScriptedStream {
	return &ScriptedStream{fragments: fragments, terminal: terminal}
}

func (s *ScriptedStream) Recv() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next < len(s.fragments) {
		f := s.fragments[s.next]
		s.next++
		return f, nil
	}
	if s.terminal != nil {
		return "", s.terminal
	}
	return "", io.EOF
}

func (s *ScriptedStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *ScriptedStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
