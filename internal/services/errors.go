package services

import "errors"

var (
	// ErrUnauthenticated is returned when an operation needs a session and has none
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the session identity may not act on the target
	ErrForbidden = errors.New("forbidden")
	// ErrFollowSelf is returned when a user tries to follow themselves
	ErrFollowSelf = errors.New("cannot follow yourself")
	// ErrCascadeIncomplete is returned when some account deletion steps failed
	ErrCascadeIncomplete = errors.New("account deletion incomplete")
)
