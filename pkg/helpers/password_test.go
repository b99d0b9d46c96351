package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	plain := "Sup3rSecret"

	hash, err := HashPassword(plain)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	// the stored value must never equal the submitted plaintext
	assert.NotEqual(t, plain, hash)

	// a second hash of the same input uses a fresh salt
	hash2, err := HashPassword(plain)
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCompareHashAndPassword(t *testing.T) {
	hash, err := HashPassword("Abc123")
	assert.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, "Abc123"))
	assert.False(t, CompareHashAndPassword(hash, "abc123"))
	assert.False(t, CompareHashAndPassword(hash, ""))
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "Abc123"))
}
