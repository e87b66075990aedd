package useradmin

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("account not found")
	ErrUnknownRole    = errors.New("unknown role")
)
