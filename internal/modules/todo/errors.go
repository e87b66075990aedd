package todo

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("todo item not found")
	ErrNotOwner       = errors.New("todo item belongs to another account")
)
