package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Storage handles writing output files into one directory
type Storage struct {
	fs  afero.Fs
	dir string
}

// ExpandHome expands a leading ~/ to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// New creates a new Storage instance rooted at dir
func New(fs afero.Fs, dir string) (*Storage, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = "."
	}

	// Create output directory if it doesn't exist
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		fs:  fs,
		dir: dir,
	}, nil
}

// Path returns the full path of name inside the storage directory
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Write replaces the file name with data
func (s *Storage) Write(name string, data []byte) error {
	path := s.Path(name)

	tmp, err := afero.TempFile(s.fs, s.dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()          // nolint:errcheck
		s.fs.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := s.fs.Chmod(tmpName, 0644); err != nil {
		s.fs.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.fs.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	return nil
}
