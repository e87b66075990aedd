package submission

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("submission not found")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrDeadlinePassed     = errors.New("challenge deadline has passed")
	ErrFileTooLarge       = errors.New("file exceeds the size limit")
	ErrNotSubmissionOwner = errors.New("submission belongs to another account")
)
