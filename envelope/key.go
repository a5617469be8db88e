package envelope

import (
	"crypto/rand"
	"fmt"
)

// KeySize is the length of all symmetric keys (DEKs and the KEK) in bytes.
const KeySize = 32

// Key is a 256-bit symmetric key. Keys holding live material must be
// zeroized with Zeroize as soon as they leave the current call stack;
// the envelope compose operations do this automatically.
type Key []byte

// GenerateDEK returns a fresh cryptographically random 256-bit data
// encryption key. DEKs are generated once per stored object and never
// derived from payload content.
func GenerateDEK() (Key, error) {
	k := make(Key, KeySize)
	if _, err := rand.Read(k); err != nil {
		return nil, fmt.Errorf("envelope: DEK generation failed: %w", err)
	}
	return k, nil
}

// Zeroize overwrites the key bytes with zeros. No-op on a nil or empty
// key. Safe to call more than once.
func (k Key) Zeroize() {
	for i := range k {
		k[i] = 0
	}
}

// validateKey checks that a key is exactly KeySize bytes.
func validateKey(k Key) error {
	if len(k) != KeySize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(k))
	}
	return nil
}
