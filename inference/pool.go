package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Pool hands out sessions of one model to concurrent diacritization calls.
// A Session serializes its own calls, so the pool size bounds how many
// lines are diacritized at once.
type Pool struct {
	sessions chan *Session
	size     int

	// mu guards closed and every send on sessions, so that Release never
	// sends on a channel Close has closed.
	mu     sync.Mutex
	closed bool
}

func newPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sessions: make(chan *Session, size), size: size}
}

// NewPool opens size sessions of the model at modelPath. A size below 1
// opens one session.
func NewPool(modelPath string, size int, cfg SessionConfig) (*Pool, error) {
	pool := newPool(size)

	for i := 0; i < pool.size; i++ {
		session, err := NewSession(modelPath, cfg)
		if err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("opening session %d of %d: %w", i+1, pool.size, err)
		}
		pool.sessions <- session
	}

	return pool, nil
}

// Acquire takes a session, waiting until one is free or ctx is done.
// It returns ErrPoolClosed once the pool is closed.
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

// Release hands a session back. Sessions released after Close, or beyond
// the pool size, are closed instead.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		select {
		case p.sessions <- s:
			return
		default:
		}
	}
	_ = s.Close()
}

// Close closes every idle session. Sessions still held by callers are
// closed when they are released. Close is idempotent.
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

// Size returns the number of sessions the pool was opened with.
func (p *Pool) Size() int {
	return p.size
}
