// Package otp implements the one-time-password store used by phone
// login. Codes live under a TTL and are consumed on successful verify.
package otp

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Store keeps one pending code per phone number. Verify consumes the
// code on success; expired codes are evicted when read.
type Store interface {
	Set(ctx context.Context, phone, code string) error
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// GenerateCode returns a random 6-digit code
func GenerateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is the in-process development store. It is volatile and
// per-instance; multi-instance deployments must use the redis store.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryStore creates an in-memory store with the given code TTL
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Set stores a code for the phone number, replacing any pending one
func (s *MemoryStore) Set(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[phone] = memoryEntry{
		code:      code,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Verify checks the code for the phone number. Expired entries are
// removed on read; a matching code is removed so it cannot be reused.
func (s *MemoryStore) Verify(_ context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, phone)
		return false, nil
	}
	if entry.code != code {
		return false, nil
	}
	delete(s.entries, phone)
	return true, nil
}
