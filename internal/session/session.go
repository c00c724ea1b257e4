// Package session keeps the in-memory sessions of the account service. A
// session owns exactly one savings and one current account; both are
// discarded when the session is closed or the process exits.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eaglebank/banking/internal/account"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session pairs the two accounts opened together.
type Session struct {
	ID        string
	Savings   *account.Account
	Current   *account.Account
	CreatedAt time.Time
}

// Account returns the session's account of the given kind.
func (s *Session) Account(kind account.Kind) (*account.Account, error) {
	switch kind {
	case account.Savings:
		return s.Savings, nil
	case account.Current:
		return s.Current, nil
	}
	return nil, fmt.Errorf("%w: %s", account.ErrUnknownKind, kind)
}

// Registry indexes open sessions by ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Open creates a session with fresh, empty accounts.
func (r *Registry) Open() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Savings:   account.NewSavings(),
		Current:   account.NewCurrent(),
		CreatedAt: r.now(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Account resolves the account of kind inside session id.
func (r *Registry) Account(id string, kind account.Kind) (*account.Account, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Account(kind)
}

// Close discards the session and its accounts.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
