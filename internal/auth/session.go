// Package auth models the signed-in principal as an explicit value and the
// session that tracks it. The identity provider itself is external;
// plantpulse only consumes a principal and a bearer token.
package auth

import "sync"

// Principal is the identity attempting an operation. The zero value is the
// anonymous, unauthenticated principal.
type Principal struct {
	Email         string
	DisplayName   string
	PhotoURL      string
	Authenticated bool
}

// Anonymous is the signed-out principal.
var Anonymous = Principal{}

// Session holds the current principal and bearer credential and notifies
// subscribers on sign-in and sign-out. Consumers re-derive their owner
// filter from the new principal; a session change never clears the record
// store.
type Session struct {
	mu        sync.RWMutex
	principal Principal
	token     string
	subs      map[int]func(Principal)
	nextSub   int
}

func NewSession() *Session {
	return &Session{subs: make(map[int]func(Principal))}
}

// SignIn installs a principal and its bearer token.
func (s *Session) SignIn(p Principal, token string) {
	p.Authenticated = p.Email != ""
	s.mu.Lock()
	s.principal = p
	s.token = token
	listeners := s.listeners()
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(p)
	}
}

// SignOut drops the principal and credential.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.principal = Anonymous
	s.token = ""
	listeners := s.listeners()
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(Anonymous)
	}
}

// Principal returns the current principal value.
func (s *Session) Principal() Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// Token returns the current bearer credential, or "" when signed out.
// Implements the remote client's TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn to run on every sign-in/sign-out and returns the
// function that removes the subscription.
func (s *Session) Subscribe(fn func(Principal)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) listeners() []func(Principal) {
	out := make([]func(Principal), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
