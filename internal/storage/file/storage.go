package file

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mcoot/fleetbattle-console/internal/storage"
)

// Storage keeps one file per key inside a private directory
type Storage struct {
	dir string
}

// New creates a file storage rooted at dir. The directory is created on the
// first write.
func New(dir string) *Storage {
	return &Storage{dir: dir}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// DefaultDir returns ~/.fbconsole, or a relative .fbconsole when there is no
// home directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fbconsole"
	}
	return filepath.Join(home, ".fbconsole")
}

// Dir returns the storage directory
func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Put stages every value before any of them becomes visible. When a later
// key cannot be moved into place the keys already moved are removed, so a
// reader never sees part of the set.
func (s *Storage) Put(ctx context.Context, values map[string]string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	keys := slices.Sorted(maps.Keys(values))
	files := make([]stagedFile, 0, len(keys))
	defer func() {
		for _, f := range files {
			_ = os.Remove(f.tmp)
		}
	}()

	for _, k := range keys {
		p, err := s.path(k)
		if err != nil {
			return err
		}
		tmp, err := stage(p, values[k])
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", k, err)
		}
		files = append(files, stagedFile{key: k, path: p, tmp: tmp})
	}

	for i, f := range files {
		if err := os.Rename(f.tmp, f.path); err != nil {
			for _, done := range files[:i] {
				_ = os.Remove(done.path)
			}
			return fmt.Errorf("failed to write %s: %w", f.key, err)
		}
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		p, err := s.path(k)
		if err != nil {
			return err
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

type stagedFile struct {
	key  string
	path string
	tmp  string
}

// stage writes value to a private temporary file next to path and returns
// its name
func stage(path, value string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
