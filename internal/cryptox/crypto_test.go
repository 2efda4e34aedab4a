package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	assert.True(t, bytes.Equal(key1, key2), "same inputs must give the same key")
	assert.Len(t, key1, KeySize)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	secret := []byte("secret-password")

	key1 := DeriveKey(secret, []byte("salt-1"))
	key2 := DeriveKey(secret, []byte("salt-2"))

	assert.False(t, bytes.Equal(key1, key2), "different salts must give different keys")
}

func TestHashSecret_RoundTrip(t *testing.T) {
	salt, hash := HashSecret([]byte("s3cret!"))
	require.Len(t, salt, SaltSize)
	require.Len(t, hash, KeySize)

	assert.True(t, VerifySecret([]byte("s3cret!"), salt, hash))
	assert.False(t, VerifySecret([]byte("s3cret?"), salt, hash))
	assert.False(t, VerifySecret([]byte(""), salt, hash))
}

func TestHashSecret_FreshSaltEachTime(t *testing.T) {
	salt1, hash1 := HashSecret([]byte("same"))
	salt2, hash2 := HashSecret([]byte("same"))

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifySecret_RejectsTruncatedHash(t *testing.T) {
	salt, hash := HashSecret([]byte("pw"))
	assert.False(t, VerifySecret([]byte("pw"), salt, hash[:KeySize-1]))
	assert.False(t, VerifySecret([]byte("pw"), salt, nil))
}
