package site

import "errors"

// ErrInvalidCredentials is returned by Authenticate for unknown accounts,
// disabled accounts and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid account or password")
