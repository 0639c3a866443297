// Package users is the credential store: persistence of user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository persists user accounts. Email uniqueness is enforced by the
// storage layer; implementations report a violation as common.ErrorAlreadyExists
// and a missing row as common.ErrorNotFound.
type Repository interface {
	// Create inserts user and fills in the store-assigned ID and timestamps.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Update applies the non-nil fields of patch and refreshes updated_at in a
	// single statement.
	Update(ctx context.Context, id int64, patch models.ProfilePatch) (*models.User, error)
}
