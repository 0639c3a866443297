package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// RevocationChecker answers whether a token id was revoked before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Session is the identity resolved from a valid token.
type Session struct {
	UserID    int64
	JTI       string
	ExpiresAt time.Time
}

// SessionValidator turns a presented token into a Session. It is the only
// reader of the revocation registry.
type SessionValidator struct {
	secret  []byte
	revoked RevocationChecker
	now     Clock
}

func NewSessionValidator(secret []byte, revoked RevocationChecker, now Clock) (*SessionValidator, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if revoked == nil {
		return nil, errors.New("revocation checker is required")
	}
	if now == nil {
		now = time.Now
	}
	return &SessionValidator{secret: secret, revoked: revoked, now: now}, nil
}

// Validate checks, in order, signature and structure, expiry and revocation.
// Token failures match common.ErrInvalidToken plus one of ErrTokenMalformed,
// ErrTokenExpired or ErrTokenRevoked. A failing revocation lookup is returned
// as an internal error, never as a valid session.
func (v *SessionValidator) Validate(ctx context.Context, token string) (*Session, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.TokenError(common.ErrTokenExpired)
		}
		return nil, common.TokenError(common.ErrTokenMalformed)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" {
		return nil, common.TokenError(common.ErrTokenMalformed)
	}

	revoked, err := v.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: revocation lookup: %w", common.ErrorInternal, err)
	}
	if revoked {
		return nil, common.TokenError(common.ErrTokenRevoked)
	}

	return &Session{
		UserID:    userID,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
