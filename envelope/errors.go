package envelope

import "errors"

var (
	// ErrKEKTooShort indicates the master key material is shorter than the
	// required 32 bytes. Raised once at cipher construction, never per call.
	ErrKEKTooShort = errors.New("envelope: KEK must be at least 32 bytes")

	// ErrInvalidKeySize indicates a DEK is not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("envelope: DEK must be 32 bytes")

	// ErrUnsupportedAlgorithm indicates an unknown AEAD algorithm name.
	ErrUnsupportedAlgorithm = errors.New("envelope: unsupported AEAD algorithm")

	// ErrAuthenticationFailed indicates AEAD tag verification failed during
	// decryption: tampered ciphertext, tampered tag, or wrong key. No partial
	// plaintext is ever returned alongside this error.
	ErrAuthenticationFailed = errors.New("envelope: authentication failed")

	// ErrInvalidRecord indicates a serialized record is malformed or truncated.
	ErrInvalidRecord = errors.New("envelope: invalid record encoding")
)
