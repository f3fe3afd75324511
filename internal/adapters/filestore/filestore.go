// Package filestore implements the flat-directory file store backing
// the catalog. Files are keyed by their base name exactly as supplied
// at add time; there is no subdirectory structure.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"songvault/internal/domain"
)

type localStore struct {
	root string
}

// New returns a domain.FileStore rooted at dir, creating the directory
// if it does not exist.
func New(dir string) (domain.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &localStore{root: abs}, nil
}

func (s *localStore) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

func (s *localStore) Stage(sourcePath string) (string, error) {
	name := filepath.Base(sourcePath)
	dest := s.Path(name)
	if s.Exists(name) {
		return "", fmt.Errorf("%w: %s", domain.ErrSongExists, name)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create stored file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dest)
		return "", fmt.Errorf("copy %s into storage: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dest)
		return "", err
	}
	return name, nil
}

func (s *localStore) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrSongFileMissing, name)
		}
		return err
	}
	return nil
}

func (s *localStore) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSongFileMissing, name)
		}
		return nil, err
	}
	return f, nil
}

func (s *localStore) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}
