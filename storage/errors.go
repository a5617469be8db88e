package storage

import "errors"

var (
	// ErrNotFound indicates no artifact exists at the given path.
	ErrNotFound = errors.New("storage: artifact not found")

	// ErrIOFailure indicates a backend read/write error (disk full,
	// permission denied, ...). Propagated unchanged; retry policy belongs
	// to the caller.
	ErrIOFailure = errors.New("storage: I/O failure")

	// ErrInvalidBaseDir indicates the base directory path is invalid.
	ErrInvalidBaseDir = errors.New("storage: invalid base directory")

	// ErrBaseDirMissing indicates the base directory does not exist and
	// auto-creation is disabled.
	ErrBaseDirMissing = errors.New("storage: base directory does not exist")

	// ErrInvalidDigest indicates a digest is not 64 lowercase hex characters.
	ErrInvalidDigest = errors.New("storage: digest must be 64 lowercase hex characters")

	// ErrInvalidPath indicates an artifact path is empty or escapes the root.
	ErrInvalidPath = errors.New("storage: invalid artifact path")

	// ErrUnsupportedCompression indicates an unknown compression scheme.
	ErrUnsupportedCompression = errors.New("storage: unsupported compression scheme")

	// ErrDecompressedTooLarge indicates decompressed data exceeds the safety limit.
	ErrDecompressedTooLarge = errors.New("storage: decompressed data exceeds maximum size")
)
