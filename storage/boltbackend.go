package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketArtifacts = []byte("artifacts")

// BoltBackend implements Backend on a single bbolt database file. Useful for
// embedded deployments where a directory tree of small files is undesirable;
// bbolt transactions give the same atomic-per-artifact write guarantee the
// filesystem backend provides via temp-then-rename.
type BoltBackend struct {
	db *bbolt.DB
}

// OpenBoltBackend opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltBackend(dbPath string) (*BoltBackend, error) {
	if dbPath == "" {
		return nil, ErrInvalidBaseDir
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt db: %w", ErrIOFailure, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArtifacts)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %w", ErrIOFailure, err)
	}
	return &BoltBackend{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltBackend) Close() error { return b.db.Close() }

// Write stores data at path inside a single write transaction.
func (b *BoltBackend) Write(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketArtifacts).Put([]byte(path), data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Read returns the artifact at path, or ErrNotFound.
func (b *BoltBackend) Read(path string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketArtifacts).Get([]byte(path))
		if v == nil {
			return ErrNotFound
		}
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return data, nil
}

// Remove deletes the artifact at path, or returns ErrNotFound.
func (b *BoltBackend) Remove(path string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketArtifacts)
		if bkt.Get([]byte(path)) == nil {
			return ErrNotFound
		}
		return bkt.Delete([]byte(path))
	})
	if err != nil {
		if err == ErrNotFound {
			return err
		}
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Exists reports whether an artifact is present at path.
func (b *BoltBackend) Exists(path string) (bool, error) {
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketArtifacts).Get([]byte(path)) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return found, nil
}

// List returns all artifact paths in key order.
func (b *BoltBackend) List() ([]string, error) {
	var result []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketArtifacts).ForEach(func(k, _ []byte) error {
			result = append(result, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return result, nil
}

// Compile-time interface check.
var _ Backend = (*BoltBackend)(nil)
