package translate

import (
	"context"
	"io"
	"sync"

	"github.com/jamesainslie/go-mteval/corpus"
)

// Session serializes calls to one translator instance. Translators are not
// assumed to be safe for concurrent use, so a pool hands out one session
// per caller.
type Session struct {
	tr     Translator
	mu     sync.Mutex
	closed bool
}

// NewSession wraps a translator instance.
func NewSession(tr Translator) *Session {
	return &Session{tr: tr}
}

// Translate runs the wrapped translator on text.
func (s *Session) Translate(ctx context.Context, text string, dir corpus.Direction) (string, error) {
	// Check context before the call; translators may be slow to honor it.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSessionClosed
	}

	return s.tr.Translate(ctx, text, dir)
}

// Close releases the translator if it implements io.Closer.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if c, ok := s.tr.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
