package hasher

import "errors"

// ErrEmptySecret is returned when a hasher is created without a secret.
var ErrEmptySecret = errors.New("hasher: secret is required")
