// Package revokedtokens persists revoked session token ids so revocation is
// shared by every server process using the same database.
package revokedtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository stores revoked token ids together with the token expiry.
type Repository interface {
	// Create records token as revoked. Recording the same jti twice is not an error.
	Create(ctx context.Context, token models.RevokedToken) error

	// Exists reports whether jti has been revoked.
	Exists(ctx context.Context, jti string) (bool, error)

	// DeleteExpired removes entries whose token expired before now and returns
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
