package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rafabene/avantpro-blog/internal/domain/ports"
)

// LocalStore implementa ports.FileStore gravando em disco; os arquivos são
// servidos pela própria API em /storage.
type LocalStore struct {
	root      string
	publicURL string
}

// NewLocalStore cria o diretório raiz se necessário
func NewLocalStore(root, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: root, publicURL: publicURL}, nil
}

// Root retorna o diretório servido como /storage
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(ctx context.Context, namespace string, upload ports.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := newObjectKey(namespace, upload)
	dest := filepath.Join(s.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create namespace dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := io.Copy(tmp, upload.Content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("move upload: %w", err)
	}

	return key, nil
}

func (s *LocalStore) URL(key string) string {
	return publicURL(s.publicURL, key)
}
