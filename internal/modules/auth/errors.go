package auth

import "errors"

// Client-facing auth failures. The first group means "log in again"; the
// second means a security incident — every session for the family (or the
// whole account) has been revoked and the client must force a full logout.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrAccountConflict = errors.New("email already bound to another identity")
	ErrTokenNotFound   = errors.New("refresh token not found")
	ErrTokenExpired    = errors.New("refresh token expired")
	ErrSessionExpired  = errors.New("session expired")
	ErrAccountInactive = errors.New("account is deactivated")

	ErrTokenReuseDetected = errors.New("refresh token reuse detected")
	ErrTokenOwnerMismatch = errors.New("refresh token owner mismatch")
)
