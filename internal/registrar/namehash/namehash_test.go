package namehash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Hash("alice"), Hash("alice"))
	})

	t.Run("distinct names give distinct identifiers", func(t *testing.T) {
		assert.NotEqual(t, Hash("alice"), Hash("bob"))
		assert.NotEqual(t, Hash("alice"), Hash("Alice"))
		assert.NotEqual(t, Hash("alice"), Hash("alice "))
	})

	t.Run("known vector", func(t *testing.T) {
		// Keccak-256 of the empty string.
		assert.Equal(t,
			"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
			Hash("").String())
	})
}
