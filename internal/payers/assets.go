package payers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/counterfoil/teller/pkg/storage"
)

// AssetStore resolves reference signature assets named by directory entries.
type AssetStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

type dirStore struct {
	base string
}

// NewDirStore creates an AssetStore reading assets from a local directory.
func NewDirStore(base string) AssetStore {
	return &dirStore{base: base}
}

func (s *dirStore) Load(_ context.Context, name string) ([]byte, error) {
	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAssetPath, name)
	}

	data, err := os.ReadFile(filepath.Join(s.base, name))
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}

	return data, nil
}

type blobStore struct {
	store  storage.System
	prefix string
}

// NewBlobStore creates an AssetStore reading assets from blob storage
// under the given key prefix.
func NewBlobStore(store storage.System, prefix string) AssetStore {
	return &blobStore{store: store, prefix: prefix}
}

func (s *blobStore) Load(ctx context.Context, name string) ([]byte, error) {
	key := name
	if s.prefix != "" {
		key = path.Join(s.prefix, name)
	}

	result, err := s.store.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download asset %s: %w", name, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}

	return data, nil
}
