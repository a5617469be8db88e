package vault

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/photovaultorg/libphotovault-go/envelope"
	"github.com/photovaultorg/libphotovault-go/storage"
)

// Retrieve loads, decrypts, and integrity-checks the object at
// (category, digest) and returns its plaintext and metadata.
//
// Fails with ErrNotFound if the payload record is absent, ErrDEKMissing if
// the wrapped DEK is absent (including after cryptographic erasure),
// ErrMetadataMissing if the sidecar is absent,
// envelope.ErrAuthenticationFailed on AEAD tag mismatch, and
// ErrIntegrityFailure if the decrypted plaintext does not re-hash to
// digest. None of these are downgraded to an empty success.
func (v *Vault) Retrieve(category Category, digest string) ([]byte, *Metadata, error) {
	if err := v.checkOpen(); err != nil {
		return nil, nil, err
	}
	if err := validatePublicCategory(category); err != nil {
		return nil, nil, err
	}
	if err := storage.ValidateDigest(digest); err != nil {
		return nil, nil, err
	}

	rawPayload, err := v.backend.Read(storage.PayloadPath(string(category), digest))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s/%s", ErrNotFound, category, digest)
		}
		return nil, nil, err
	}

	rawDEK, err := v.backend.Read(storage.DEKPath(digest))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrDEKMissing, digest)
		}
		return nil, nil, err
	}

	rawMeta, err := v.backend.Read(storage.MetadataPath(string(category), digest))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s/%s", ErrMetadataMissing, category, digest)
		}
		return nil, nil, err
	}
	meta, err := unmarshalMetadata(rawMeta)
	if err != nil {
		return nil, nil, err
	}

	payloadRec, err := envelope.UnmarshalRecord(rawPayload)
	if err != nil {
		return nil, nil, fmt.Errorf("vault: decode payload record: %w", err)
	}
	dekRec, err := envelope.UnmarshalRecord(rawDEK)
	if err != nil {
		return nil, nil, fmt.Errorf("vault: decode DEK record: %w", err)
	}

	encoded, err := v.cipher.EnvelopeDecrypt(payloadRec, dekRec)
	if err != nil {
		if errors.Is(err, envelope.ErrAuthenticationFailed) {
			v.log.WithFields(logrus.Fields{
				"category": category,
				"sha256":   digest,
			}).Error("AEAD authentication failed; artifact tampered or wrong KEK")
		}
		return nil, nil, err
	}

	plaintext, err := storage.Decompress(encoded, storage.Scheme(meta.Encoding))
	if err != nil {
		return nil, nil, err
	}

	// Integrity gate: the plaintext must reproduce the digest it was
	// addressed by. A mismatch is fatal, never retried or swallowed.
	if actual := ComputeHash(plaintext); actual != digest {
		v.log.WithFields(logrus.Fields{
			"category": category,
			"sha256":   digest,
			"actual":   actual,
		}).Error("content hash mismatch after decryption")
		return nil, nil, fmt.Errorf("%w: expected %s, got %s", ErrIntegrityFailure, digest, actual)
	}

	return plaintext, meta, nil
}
