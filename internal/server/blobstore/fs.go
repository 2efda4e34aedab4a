package blobstore

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/playerprofile/internal/filex"
)

// FSStore keeps blobs as files under a base directory and serves them
// from a public URL prefix that maps onto that directory.
type FSStore struct {
	dir          string
	publicPrefix string
}

// NewFSStore creates dir if needed.
func NewFSStore(dir, publicPrefix string) (*FSStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FSStore{dir: abs, publicPrefix: publicPrefix}, nil
}

func (s *FSStore) path(ref string) (string, error) {
	key, err := cleanKey(ref)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}

func (s *FSStore) Put(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(p, data, 0o640); err != nil {
		return "", err
	}
	ref, _ := cleanKey(key)
	return ref, nil
}

func (s *FSStore) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(ref)
	if err != nil {
		return err
	}
	return filex.RemoveFile(p)
}

func (s *FSStore) URL(_ context.Context, ref string) (string, error) {
	key, err := cleanKey(ref)
	if err != nil {
		return "", err
	}
	if s.publicPrefix == "" {
		return key, nil
	}
	return strings.TrimSuffix(s.publicPrefix, "/") + "/" + key, nil
}
