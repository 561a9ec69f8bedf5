package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Factory creates one translator instance.
type Factory func() (Translator, error)

// Shared returns a factory that hands out the same translator every time,
// for translators that are already safe for concurrent use.
func Shared(tr Translator) Factory {
	return func() (Translator, error) { return tr, nil }
}

// Pool manages a fixed set of translator sessions for concurrent use.
type Pool struct {
	sessions chan *Session
	size     int
	mu       sync.Mutex
	closed   bool
}

// NewPool creates a pool of size sessions, each from its own factory call.
func NewPool(factory Factory, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		sessions: make(chan *Session, size),
		size:     size,
	}

	for i := 0; i < size; i++ {
		tr, err := factory()
		if err != nil {
			_ = pool.Close() // original error takes precedence
			return nil, fmt.Errorf("creating translator %d: %w", i, err)
		}
		pool.sessions <- NewSession(tr)
	}

	return pool, nil
}

// Acquire gets a session from the pool, blocking if none is available.
// Respects context cancellation. Returns ErrPoolClosed if the pool is closed.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case session, ok := <-p.sessions:
		if !ok {
			return nil, ErrPoolClosed
		}
		return session, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a session to the pool.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		_ = s.Close()
		return
	}

	select {
	case p.sessions <- s:
	default:
		_ = s.Close() // pool full
	}
}

// Close closes every idle session. Sessions still checked out are closed
// when released.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sessions)
	p.mu.Unlock()

	var errs []error
	for session := range p.sessions {
		if err := session.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}
