package evaluationmetric

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("evaluation metric not found")
)
