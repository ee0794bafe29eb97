package auth

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrOAuthDisabled      = errors.New("google sign-in is not configured")
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	ErrAccountNotLinked   = errors.New("no account registered for this google email")
)
