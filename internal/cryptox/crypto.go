// Package cryptox hashes and verifies account secrets with argon2id.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 32
	KeySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey stretches secret with salt. Equal inputs give equal output.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// HashSecret derives a hash of secret under a fresh random salt.
func HashSecret(secret []byte) (salt, hash []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return salt, DeriveKey(secret, salt)
}

// VerifySecret reports whether secret hashes to hash under salt.
// The comparison runs in constant time.
func VerifySecret(secret, salt, hash []byte) bool {
	candidate := DeriveKey(secret, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
