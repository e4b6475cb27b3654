package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Session identifies the signed-in operator behind a request
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type sessionKey struct{}

// WithSession attaches an authenticated session to ctx
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session attached to ctx, if any
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.UserID == uuid.Nil {
		return Session{}, false
	}
	return s, true
}

// Register serializes every operation that mutates register state, so a
// cart change, catalog edit or checkout commit runs to completion before
// the next one starts. Network replication never runs under it.
type Register struct {
	mu sync.Mutex
}

// NewRegister creates a new register lock
func NewRegister() *Register {
	return &Register{}
}

// Do runs fn while holding the register
func (r *Register) Do(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn()
}
