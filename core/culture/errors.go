package culture

import "errors"

var (
	// ErrNoCultures is returned when the language source has no enabled culture.
	ErrNoCultures = errors.New("culture: no enabled cultures configured")
	// ErrInvalidCulture is returned when an explicit culture is not a well-formed language tag.
	ErrInvalidCulture = errors.New("culture: invalid culture")
)
