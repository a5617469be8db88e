package vault

import "errors"

var (
	// ErrNotFound indicates no payload record exists for the digest.
	// Callers decide whether this maps to a 404 upstream.
	ErrNotFound = errors.New("vault: object not found")

	// ErrDEKMissing indicates the payload record exists but its wrapped DEK
	// does not. After a DEK-only delete this is the permanent state of a
	// cryptographically erased object.
	ErrDEKMissing = errors.New("vault: DEK record missing")

	// ErrMetadataMissing indicates the payload and DEK records exist but the
	// metadata sidecar does not.
	ErrMetadataMissing = errors.New("vault: metadata record missing")

	// ErrIntegrityFailure indicates the decrypted plaintext does not re-hash
	// to the digest it was addressed by. Always fatal to the call, never
	// swallowed.
	ErrIntegrityFailure = errors.New("vault: content hash mismatch after decryption")

	// ErrInvalidCategory indicates an unknown or reserved storage category.
	ErrInvalidCategory = errors.New("vault: invalid category")

	// ErrClosed indicates the vault has been closed.
	ErrClosed = errors.New("vault: closed")
)
