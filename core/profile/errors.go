package profile

import "errors"

var (
	// ErrUserNotFound must be matched by UserFinder errors for unknown ids.
	ErrUserNotFound = errors.New("user not found")
	// ErrStorage wraps failures of the underlying session storage.
	ErrStorage = errors.New("profile storage failure")
)
