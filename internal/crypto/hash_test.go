package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashData(t *testing.T) {
	h1 := HashData([]byte("hello"))
	h2 := HashData([]byte("hello"))
	h3 := HashData([]byte("world"))

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.False(t, h1.IsZero())
	assert.True(t, Hash{}.IsZero())
}

func TestDeriveID(t *testing.T) {
	seed := HashData([]byte("seed"))
	var alice, bob [32]byte
	alice[0] = 1
	bob[0] = 2

	id := DeriveID("slot", seed, alice, 0)

	// Any input change yields a different identifier
	assert.NotEqual(t, id, DeriveID("slot", seed, alice, 1), "nonce separates")
	assert.NotEqual(t, id, DeriveID("slot", seed, bob, 0), "caller separates")
	assert.NotEqual(t, id, DeriveID("commitment", seed, alice, 0), "domain separates")

	// Derivation is deterministic
	assert.Equal(t, id, DeriveID("slot", seed, alice, 0))
}
