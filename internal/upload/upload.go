// Package upload stores avatar files on local disk.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store writes uploaded files into a single directory. Any file is
// accepted as-is; there is no type or size validation.
type Store struct {
	dir string
}

// NewStore ensures the destination directory exists and returns a store
// writing into it. Creating an existing directory is a no-op.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure uploads dir: %w", err)
	}

	return &Store{dir: dir}, nil
}

// SaveAvatar writes the uploaded content under <ownerID><ext>, where ext
// is taken from the original filename, and returns the stored filename.
// When ownerID is empty the name falls back to a millisecond timestamp;
// the guarded routes never hit that branch, but the store is usable
// without a session.
func (s *Store) SaveAvatar(src io.Reader, originalName, ownerID string) (string, error) {
	owner := ownerID
	if owner == "" {
		owner = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	name := owner + filepath.Ext(originalName)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return name, nil
}

// Dir returns the directory files are stored in.
func (s *Store) Dir() string {
	return s.dir
}
