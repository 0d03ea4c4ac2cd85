package memory

import (
	"context"
	"sort"
	"sync"
)

// SettingsStore keeps channel settings for the lifetime of the process.
type SettingsStore struct {
	mu       sync.RWMutex
	enabled  map[string]struct{}
	prefixes map[string]string
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		enabled:  make(map[string]struct{}),
		prefixes: make(map[string]string),
	}
}

func (s *SettingsStore) Enabled(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.enabled))
	for id := range s.enabled {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *SettingsStore) Enable(_ context.Context, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled[channel] = struct{}{}
	return nil
}

func (s *SettingsStore) Disable(_ context.Context, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.enabled, channel)
	return nil
}

func (s *SettingsStore) Prefix(_ context.Context, channel string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefixes[channel]
	return p, ok, nil
}

func (s *SettingsStore) SetPrefix(_ context.Context, channel, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes[channel] = prefix
	return nil
}
