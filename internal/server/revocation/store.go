package revocation

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/revokedtokens"
)

// StoreRegistry keeps revoked ids in the revoked_tokens table.
type StoreRegistry struct {
	repo revokedtokens.Repository
	now  func() time.Time
}

func NewStoreRegistry(repo revokedtokens.Repository) *StoreRegistry {
	return &StoreRegistry{repo: repo, now: time.Now}
}

func (r *StoreRegistry) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.repo.Create(ctx, models.RevokedToken{JTI: jti, ExpiresAt: expiresAt.UTC()})
}

func (r *StoreRegistry) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return r.repo.Exists(ctx, jti)
}

// Purge deletes entries whose token has already expired.
func (r *StoreRegistry) Purge(ctx context.Context) (int64, error) {
	return r.repo.DeleteExpired(ctx, r.now().UTC())
}

// RunJanitor calls Purge every interval until ctx is cancelled.
func (r *StoreRegistry) RunJanitor(ctx context.Context, interval time.Duration, logger logging.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.Purge(ctx)
			if err != nil {
				logger.Error(ctx, "revocation purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug(ctx, "revocation purge", "removed", n)
			}
		}
	}
}
