package memory

import (
	"sort"
	"sync"

	"anagram-quiz-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// The lock covers map access only; it is never held across a quiz operation.
type SessionStore struct {
	factory app.SessionFactory

	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(factory app.SessionFactory) *SessionStore {
	return &SessionStore{
		factory:  factory,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(channel string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[channel]; ok {
		return session
	}
	session := s.factory(channel)
	s.sessions[channel] = session
	return session
}

func (s *SessionStore) Get(channel string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[channel]
	return session, ok
}

func (s *SessionStore) Delete(channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, channel)
}

// Channels lists registered channels in sorted order.
func (s *SessionStore) Channels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
