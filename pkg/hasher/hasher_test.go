package hasher_test

import (
	"crypto/sha512"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/pkg/hasher"
)

var lowerHex = regexp.MustCompile(`^[0-9a-f]{128}$`)

func TestHash(t *testing.T) {
	t.Parallel()

	t.Run("matches sha512 of secret followed by input", func(t *testing.T) {
		t.Parallel()

		sum := sha512.Sum512([]byte("salt" + "password"))
		assert.Equal(t, hex.EncodeToString(sum[:]), hasher.Hash("salt", "password"))
	})

	t.Run("renders 128 lowercase hex characters", func(t *testing.T) {
		t.Parallel()

		assert.Regexp(t, lowerHex, hasher.Hash("salt", "Mixed-Case INPUT"))
		assert.Regexp(t, lowerHex, hasher.Hash("salt", ""))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first := hasher.Hash("salt", "input")
		for range 10 {
			assert.Equal(t, first, hasher.Hash("salt", "input"))
		}
	})

	t.Run("depends on input", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, hasher.Hash("salt", "x"), hasher.Hash("salt", "y"))
	})

	t.Run("depends on secret", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, hasher.Hash("salt-a", "x"), hasher.Hash("salt-b", "x"))
	})

	t.Run("known vector for empty secret and input", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			"cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce"+
				"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
			hasher.Hash("", ""))
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty secret", func(t *testing.T) {
		t.Parallel()

		h, err := hasher.New("")
		assert.ErrorIs(t, err, hasher.ErrEmptySecret)
		assert.Nil(t, h)
	})

	t.Run("MustNew panics without secret", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { hasher.MustNew("") })
	})

	t.Run("from config", func(t *testing.T) {
		t.Parallel()

		h, err := hasher.NewFromConfig(hasher.Config{Secret: "salt"})
		require.NoError(t, err)
		assert.Equal(t, hasher.Hash("salt", "input"), h.Hash("input"))

		_, err = hasher.NewFromConfig(hasher.Config{})
		assert.ErrorIs(t, err, hasher.ErrEmptySecret)
	})
}

func TestHasher_Verify(t *testing.T) {
	t.Parallel()

	h := hasher.MustNew("salt")
	digest := h.Hash("secret")

	assert.True(t, h.Verify("secret", digest))
	assert.False(t, h.Verify("Secret", digest))
	assert.False(t, h.Verify("secret", ""))
	assert.False(t, hasher.MustNew("other").Verify("secret", digest))
}
