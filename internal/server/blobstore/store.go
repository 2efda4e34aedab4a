// Package blobstore keeps headshot images outside the relational store. The
// profile row only records the reference a Store hands back.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid blob key")

// Store saves and serves opaque blobs.
type Store interface {
	// Put stores data under key and returns the reference to persist.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the blob. Unknown references are not an error.
	Delete(ctx context.Context, ref string) error
	// URL returns an address the blob can be fetched from.
	URL(ctx context.Context, ref string) (string, error)
}

// HeadshotKey returns a fresh key for an account's headshot. ext includes
// the leading dot.
func HeadshotKey(accountID, ext string) string {
	return fmt.Sprintf("headshots/%s/%s%s", accountID, uuid.New(), ext)
}

// cleanKey rejects keys that would escape the store's root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}
