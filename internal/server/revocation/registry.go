// Package revocation records session token ids that were revoked before their
// natural expiry. Three interchangeable backends are provided: an in-process
// set, Redis and the relational store.
package revocation

import (
	"context"
	"fmt"
	"time"
)

// Registry is the revocation capability handed to the session validator
// (reads) and the account service (writes). Implementations are safe for
// concurrent use and a completed Revoke is visible to every later IsRevoked.
type Registry interface {
	// Revoke marks jti as revoked. expiresAt is the token's own expiry; backends
	// may forget the entry after it. Revoking twice is not an error.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Backend names accepted by configuration.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ValidateBackend reports whether name is a known backend.
func ValidateBackend(name string) error {
	switch name {
	case BackendMemory, BackendRedis, BackendPostgres:
		return nil
	default:
		return fmt.Errorf("unknown revocation backend %q", name)
	}
}
