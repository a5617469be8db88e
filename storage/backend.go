// Package storage provides artifact persistence for the blob store: a small
// path-addressed Backend interface, a sharded filesystem implementation with
// atomic writes, a bbolt-backed single-file implementation, the pure
// sharded-path computation, and payload compression codecs.
//
// Artifact paths are relative, slash-separated, and fully determined by
// (category, digest); see PayloadPath, DEKPath, and MetadataPath.
package storage

// Backend persists opaque artifacts at relative slash-separated paths.
// Implementations must make Write atomic per artifact: a concurrent reader
// observes either the previous content or the full new content, never a
// partial write.
type Backend interface {
	// Write stores data at path, creating parent structure on demand and
	// replacing any existing artifact.
	Write(path string, data []byte) error

	// Read returns the artifact at path, or ErrNotFound.
	Read(path string) ([]byte, error)

	// Remove deletes the artifact at path, or returns ErrNotFound.
	Remove(path string) error

	// Exists reports whether an artifact is present at path.
	Exists(path string) (bool, error)

	// List returns the relative paths of all stored artifacts
	// (for backup/export).
	List() ([]string, error)
}
