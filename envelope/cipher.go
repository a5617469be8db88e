// Package envelope implements the envelope encryption layer of the blob
// store: per-object data encryption keys (DEKs) wrapped under a master key
// (KEK), AEAD encryption of payloads under their DEK, and a fixed binary
// record format shared by payload and wrapped-DEK records.
//
// Key hierarchy:
//
//	KEK (supplied by configuration) → wraps → DEK (one per object) → encrypts → payload
//
// Destroying a wrapped DEK renders its payload ciphertext permanently
// unrecoverable; this is the cryptographic erasure mechanism of the store.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceSize is the AEAD nonce length in bytes (96 bits).
	NonceSize = 12

	// TagSize is the AEAD authentication tag length in bytes (128 bits).
	TagSize = 16
)

// Algorithm selects the AEAD primitive. Both supported algorithms use a
// 256-bit key, 96-bit nonce, and 128-bit tag, so records are wire-compatible
// across algorithms at the format level (decryption still requires the
// matching algorithm).
type Algorithm string

const (
	// AlgorithmAESGCM is AES-256-GCM, the default.
	AlgorithmAESGCM Algorithm = "aes256gcm"

	// AlgorithmChaCha20Poly1305 is ChaCha20-Poly1305.
	AlgorithmChaCha20Poly1305 Algorithm = "chacha20poly1305"
)

// Cipher performs envelope encryption under a fixed KEK. A Cipher keeps the
// KEK in process memory for its lifetime; call Close to zeroize it when the
// cipher is no longer needed. The KEK is never persisted and never logged.
type Cipher struct {
	kek Key
	alg Algorithm
}

// NewCipher creates a Cipher from raw master key material. At least 32 bytes
// are required; the first 32 are used as the AES-256/ChaCha20 key. The key
// material is copied, so the caller may zeroize its own buffer afterwards.
//
// A short KEK is a configuration error surfaced here, at startup, rather
// than on every call.
func NewCipher(kekMaterial []byte, alg Algorithm) (*Cipher, error) {
	if len(kekMaterial) < KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrKEKTooShort, len(kekMaterial))
	}
	switch alg {
	case AlgorithmAESGCM, AlgorithmChaCha20Poly1305:
	case "":
		alg = AlgorithmAESGCM
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}

	kek := make(Key, KeySize)
	copy(kek, kekMaterial[:KeySize])
	return &Cipher{kek: kek, alg: alg}, nil
}

// Algorithm returns the AEAD algorithm this cipher uses.
func (c *Cipher) Algorithm() Algorithm { return c.alg }

// Close zeroizes the in-memory KEK. The cipher must not be used afterwards.
func (c *Cipher) Close() error {
	c.kek.Zeroize()
	return nil
}

// newAEAD constructs the AEAD primitive for a 32-byte key.
func (c *Cipher) newAEAD(key Key) (cipher.AEAD, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	switch c.alg {
	case AlgorithmChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("envelope: ChaCha20-Poly1305 creation failed: %w", err)
		}
		return aead, nil
	default:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("envelope: AES cipher creation failed: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("envelope: GCM creation failed: %w", err)
		}
		return aead, nil
	}
}

// Encrypt encrypts plaintext under dek with a fresh random nonce. The nonce
// is always generated here; callers cannot supply one, which structurally
// prevents nonce reuse under a given key.
func (c *Cipher) Encrypt(plaintext []byte, dek Key) (*Record, error) {
	aead, err := c.newAEAD(dek)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("envelope: random nonce generation failed: %w", err)
	}

	// Seal output is ciphertext || tag; split the tag off for the record.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize
	return &Record{
		Nonce:      nonce,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}, nil
}

// Decrypt decrypts a record under dek. Fails with ErrAuthenticationFailed
// if the tag does not verify; no partial plaintext is returned.
func (c *Cipher) Decrypt(rec *Record, dek Key) ([]byte, error) {
	aead, err := c.newAEAD(dek)
	if err != nil {
		return nil, err
	}
	if len(rec.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", ErrInvalidRecord, aead.NonceSize())
	}

	sealed := make([]byte, len(rec.Ciphertext)+len(rec.Tag))
	copy(sealed, rec.Ciphertext)
	copy(sealed[len(rec.Ciphertext):], rec.Tag)

	plaintext, err := aead.Open(nil, rec.Nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// EncryptDEK wraps a DEK under the KEK, using the same AEAD primitive and
// record shape as payload encryption.
func (c *Cipher) EncryptDEK(dek Key) (*Record, error) {
	if err := validateKey(dek); err != nil {
		return nil, err
	}
	return c.Encrypt(dek, c.kek)
}

// DecryptDEK unwraps a DEK record under the KEK. The returned key is live
// material; the caller must zeroize it when done.
func (c *Cipher) DecryptDEK(rec *Record) (Key, error) {
	raw, err := c.Decrypt(rec, c.kek)
	if err != nil {
		return nil, err
	}
	dek := Key(raw)
	if err := validateKey(dek); err != nil {
		dek.Zeroize()
		return nil, err
	}
	return dek, nil
}
