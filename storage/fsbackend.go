package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSBackend implements Backend on the local filesystem. Artifacts live at
// {root}/{relative path}; writes go through a temp file in the target
// directory followed by a rename, so readers never observe a half-written
// artifact.
type FSBackend struct {
	root string
}

// NewFSBackend creates a filesystem backend rooted at root. When autoCreate
// is true the root directory is created if missing; otherwise a missing
// root is ErrBaseDirMissing. Shard subdirectories are always created on
// demand.
func NewFSBackend(root string, autoCreate bool) (*FSBackend, error) {
	if root == "" {
		return nil, ErrInvalidBaseDir
	}
	if autoCreate {
		if err := os.MkdirAll(root, 0700); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
	} else {
		info, err := os.Stat(root)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBaseDirMissing, root)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBaseDir, root)
		}
	}
	return &FSBackend{root: root}, nil
}

// Root returns the backend's root directory.
func (b *FSBackend) Root() string { return b.root }

// absPath resolves a relative artifact path under the root, rejecting
// anything that would escape it.
func (b *FSBackend) absPath(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return filepath.Join(b.root, clean), nil
}

// Write stores data atomically: temp file in the target directory, then
// rename. The rename makes concurrent writers of identical content safe
// (last writer wins with identical bytes).
func (b *FSBackend) Write(path string, data []byte) error {
	target, err := b.absPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	// Cleanup is a no-op after a successful rename.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Read returns the artifact at path, or ErrNotFound.
func (b *FSBackend) Read(path string) ([]byte, error) {
	target, err := b.absPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return data, nil
}

// Remove deletes the artifact at path, or returns ErrNotFound.
func (b *FSBackend) Remove(path string) error {
	target, err := b.absPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Exists reports whether an artifact is present at path.
func (b *FSBackend) Exists(path string) (bool, error) {
	target, err := b.absPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return true, nil
}

// List walks the root and returns the relative slash paths of all artifacts.
func (b *FSBackend) List() ([]string, error) {
	var result []string
	err := filepath.WalkDir(b.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(b.root, p)
		if relErr != nil {
			return relErr
		}
		result = append(result, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return result, nil
}

// Compile-time interface check.
var _ Backend = (*FSBackend)(nil)
