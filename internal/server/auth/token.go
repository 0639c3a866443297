// Package auth implements credential handling for the account service:
// bcrypt password digests, issuance of signed session tokens (JWT, HS256) and
// validation of presented tokens against signature, expiry and revocation.
//
// Tokens are self-contained; the signing secret is the only server state they
// depend on, so rotating the secret invalidates every token issued before.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the validity window of a session token.
const DefaultTokenTTL = 24 * time.Hour

// Clock returns the current time. Injected so tests can move time.
type Clock func() time.Time

// Claims are the signed contents of a session token. Subject carries the user
// id in decimal and ID the unique token id (jti).
type Claims struct {
	jwt.RegisteredClaims
}

// IssuedToken is a freshly minted session token and its claims.
type IssuedToken struct {
	Token     string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer mints session tokens. It performs no I/O.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    Clock
}

var ErrEmptySecret = errors.New("token signing secret must not be empty")

func NewTokenIssuer(secret []byte, ttl time.Duration, now Clock) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: secret, ttl: ttl, now: now}, nil
}

// Issue signs a new token for userID with a fresh random jti.
func (i *TokenIssuer) Issue(userID int64) (*IssuedToken, error) {
	jti, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     token,
		JTI:       claims.ID,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// TTL is the validity window applied to new tokens.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}
