package usecase

import "errors"

var (
	// ErrUnauthorized: no session, or the token did not resolve.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden: authenticated but lacking the required role.
	ErrForbidden = errors.New("forbidden")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
