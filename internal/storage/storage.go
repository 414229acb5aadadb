// Package storage keeps uploaded files such as department logos on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned for stored paths that escape the storage root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Store persists uploaded files and resolves their public URLs.
type Store interface {
	// Put writes r under dir with a generated name keeping ext, and returns the stored path.
	Put(dir, ext string, r io.Reader) (string, error)
	Delete(storedPath string) error
	URL(storedPath string) string
}

// LocalStore writes files below a root directory.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(dir, ext string, r io.Reader) (string, error) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	storedPath := path.Join(dir, uuid.NewString()+ext)

	full, err := s.resolve(storedPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close file: %w", err)
	}

	return storedPath, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalStore) Delete(storedPath string) error {
	if storedPath == "" {
		return nil
	}
	full, err := s.resolve(storedPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return s.baseURL + "/" + storedPath
}

func (s *LocalStore) resolve(storedPath string) (string, error) {
	clean := path.Clean("/" + storedPath)
	if clean == "/" || clean != "/"+storedPath {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
