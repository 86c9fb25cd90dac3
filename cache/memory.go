package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCodeStore is the default single-process backend. Values are lost on
// restart and not shared across instances; deployments needing either use
// the Redis backend instead.
type MemoryCodeStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewMemoryCodeStore() *MemoryCodeStore {
	s := &MemoryCodeStore{entries: make(map[string]entry)}
	go s.janitor()
	return s
}

func (s *MemoryCodeStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryCodeStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryCodeStore) Consume(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, key)
	if time.Now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryCodeStore) janitor() {
	for {
		time.Sleep(1 * time.Minute)
		s.mu.Lock()
		now := time.Now()
		for key, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}
