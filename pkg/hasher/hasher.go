package hasher

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Hash concatenates secret and input, digests the result with SHA-512
// and returns the digest as lowercase hex.
func Hash(secret, input string) string {
	sum := sha512.Sum512([]byte(secret + input))
	return hex.EncodeToString(sum[:])
}

// Hasher hashes input with a fixed secret.
type Hasher struct {
	secret string
}

// New creates a Hasher bound to secret.
func New(secret string) (*Hasher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Hasher{secret: secret}, nil
}

// MustNew is like New but panics on error. Use it on startup paths only.
func MustNew(secret string) *Hasher {
	h, err := New(secret)
	if err != nil {
		panic(err)
	}
	return h
}

// Hash returns the hex digest of the bound secret followed by input.
func (h *Hasher) Hash(input string) string {
	return Hash(h.secret, input)
}

// Verify reports whether digest matches the hash of input.
// The comparison runs in constant time.
func (h *Hasher) Verify(input, digest string) bool {
	expected := h.Hash(input)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(digest)) == 1
}
