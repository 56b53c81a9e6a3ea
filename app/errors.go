package app

import "errors"

var (
	ErrUnknownDriver = errors.New("unknown database driver")
	ErrUnhealthy     = errors.New("dependency unhealthy")
)
