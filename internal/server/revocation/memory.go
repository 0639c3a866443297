package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryRegistry keeps revoked ids in process memory. Entries are never
// removed, so the set only grows for the lifetime of the process.
type MemoryRegistry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{revoked: make(map[string]time.Time)}
}

func (r *MemoryRegistry) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.revoked[jti]; !ok {
		r.revoked[jti] = expiresAt
	}
	return nil
}

func (r *MemoryRegistry) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.revoked[jti]
	return ok, nil
}

// Len returns the number of revoked ids held.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}
