package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// Auth errors. Every token failure also matches ErrInvalidToken.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")
)

// InputError reports a caller-correctable validation failure. Reason is the
// human readable rule that was violated and is safe to return to clients.
type InputError struct {
	Reason string
}

// NewInputError wraps reason into an *InputError.
func NewInputError(reason string) *InputError {
	return &InputError{Reason: reason}
}

func (e *InputError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidInput) hold for every *InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TokenError joins ErrInvalidToken with the concrete reason so callers can
// match either the generic or the specific failure.
func TokenError(reason error) error {
	return errors.Join(ErrInvalidToken, reason)
}
