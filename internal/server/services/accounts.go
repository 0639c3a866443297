// Package services implements the account lifecycle on top of the credential
// store, the password hasher, the token issuer and the revocation registry.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophauth/internal/server/revocation"
	"github.com/dmitrijs2005/gophauth/internal/server/validation"
)

// AuthResult is returned by a successful Register or Login.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	issuer      *auth.TokenIssuer
	validator   *auth.SessionValidator
	revocations revocation.Registry
	log         logging.Logger
}

func NewAccountService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	hasher *auth.PasswordHasher,
	issuer *auth.TokenIssuer,
	validator *auth.SessionValidator,
	revocations revocation.Registry,
	log logging.Logger,
) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		validator:   validator,
		revocations: revocations,
		log:         log.With("module", "accounts"),
	}
}

func (s *AccountService) users() users.Repository {
	return s.repomanager.Users(s.db)
}

func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrorInternal, op, err)
}

// Register creates an account and logs it in. Inputs are validated in the
// order name, email, password and the first failure is returned.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {

	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	repo := s.users()

	// fast path only; the unique index decides
	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrEmailTaken
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError("lookup email", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, internalError("hash password", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Name:         validation.NormalizeName(name),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrEmailTaken
		}
		return nil, internalError("create user", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)

	return s.issue(user)
}

// Login authenticates by email and password. A malformed email is an input
// error; unknown email and wrong password both yield
// common.ErrInvalidCredentials after the same bcrypt work.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, internalError("lookup email", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)

	return s.issue(user)
}

func (s *AccountService) issue(user *models.User) (*AuthResult, error) {
	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, internalError("issue token", err)
	}
	return &AuthResult{User: user, Token: tok.Token, ExpiresAt: tok.ExpiresAt}, nil
}

// Logout revokes the presented token. The token must currently validate;
// other tokens of the same user stay valid.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	session, err := s.validator.Validate(ctx, token)
	if err != nil {
		return err
	}

	if err := s.revocations.Revoke(ctx, session.JTI, session.ExpiresAt); err != nil {
		return internalError("revoke token", err)
	}

	s.log.Info(ctx, "user logged out", "user_id", session.UserID)
	return nil
}

// VerifySession resolves token to the user it was issued for.
func (s *AccountService) VerifySession(ctx context.Context, token string) (*models.User, error) {
	session, err := s.validator.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users().GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, internalError("lookup user", err)
	}

	return user, nil
}

// GetProfile returns the profile of the session's user.
func (s *AccountService) GetProfile(ctx context.Context, token string) (*models.User, error) {
	return s.VerifySession(ctx, token)
}

// UpdateProfile applies patch to the session's user. Present fields are
// validated name first, then email. The ownership check and the update run in
// one transaction. An empty patch only refreshes updated_at.
func (s *AccountService) UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.User, error) {
	session, err := s.validator.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	var clean models.ProfilePatch

	if patch.Name != nil {
		if err := validation.ValidateName(*patch.Name); err != nil {
			return nil, err
		}
		name := validation.NormalizeName(*patch.Name)
		clean.Name = &name
	}

	if patch.Email != nil {
		email := validation.NormalizeEmail(*patch.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, err
		}
		clean.Email = &email
	}

	if clean.IsEmpty() {
		s.log.Debug(ctx, "empty profile patch, refreshing updated_at", "user_id", session.UserID)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if clean.Email != nil {
			owner, err := repo.GetByEmail(ctx, *clean.Email)
			switch {
			case err == nil && owner.ID != session.UserID:
				return common.ErrEmailTaken
			case err != nil && !errors.Is(err, common.ErrorNotFound):
				return internalError("lookup email", err)
			}
		}

		u, err := repo.Update(ctx, session.UserID, clean)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrorAlreadyExists):
				return common.ErrEmailTaken
			case errors.Is(err, common.ErrorNotFound):
				return common.ErrUserNotFound
			}
			return internalError("update user", err)
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) || errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrorInternal) {
			return nil, err
		}
		return nil, internalError("update transaction", err)
	}

	s.log.Info(ctx, "profile updated", "user_id", user.ID)
	return user, nil
}
