package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs as plain files under a root directory. Keys may
// contain slashes; intermediate directories are created on write.
type LocalStore struct {
	root string
}

// NewLocalStore ensures the root directory exists and returns a store over it.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

// path resolves key inside the root, refusing keys that escape it.
func (s *LocalStore) path(key string) (string, error) {
	p := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(p, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("key %q escapes storage root", key)
	}
	return p, nil
}

func (s *LocalStore) Write(ctx context.Context, key string, r io.Reader) (int64, error) {
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o770); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", filepath.Dir(p), err)
	}

	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", p, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(p)
		return 0, fmt.Errorf("write %s: %w", p, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("close %s: %w", p, err)
	}

	return n, nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	return f, nil
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

func (s *LocalStore) Size(ctx context.Context, key string) (int64, error) {
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("stat %s: %w", p, err)
	}
	return info.Size(), nil
}
