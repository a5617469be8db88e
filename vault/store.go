package vault

import (
	"fmt"
	"time"

	"github.com/photovaultorg/libphotovault-go/envelope"
	"github.com/photovaultorg/libphotovault-go/storage"
)

// StoreResult is the outcome of a Store call.
type StoreResult struct {
	// Hash is the object's permanent content identity, 64 hex characters.
	Hash string

	// IsNew reports whether the object was created by this call. False
	// means the content was already fully stored and the call was a
	// deduplicated no-op.
	IsNew bool
}

// Store persists payload under its content digest in the given category.
//
// Storing content whose digest is already fully present is idempotent: the
// existing object and its original metadata win, the new bytes are
// discarded (they are provably identical), and IsNew is false.
//
// If a previous crash left the artifact set incomplete, Store heals it
// deterministically: missing payload or DEK records are rewritten from the
// supplied payload, and a missing metadata sidecar is freshly written. An
// existing wrapped DEK is reused rather than replaced, so payload records
// of the same digest in other categories stay decryptable.
func (v *Vault) Store(category Category, payload []byte, fields Fields) (*StoreResult, error) {
	if err := v.checkOpen(); err != nil {
		return nil, err
	}
	if err := validatePublicCategory(category); err != nil {
		return nil, err
	}

	digest := ComputeHash(payload)
	unlock := v.locks.lock(category, digest)
	defer unlock()

	st, err := v.stat(category, digest)
	if err != nil {
		return nil, err
	}
	if st.Complete() {
		return &StoreResult{Hash: digest, IsNew: false}, nil
	}

	if !st.Payload || !st.DEK {
		if err := v.writeRecords(category, digest, payload, st.DEK); err != nil {
			return nil, err
		}
	}

	if !st.Metadata {
		if err := v.writeMetadata(category, digest, int64(len(payload)), fields); err != nil {
			return nil, err
		}
	}

	return &StoreResult{Hash: digest, IsNew: !st.Payload}, nil
}

// writeRecords encrypts payload and persists the payload record and, when
// absent, the wrapped-DEK record. When a DEK record already exists (the
// digest lives in another category, or only the payload record was lost in
// a crash) the existing DEK is unwrapped and reused.
func (v *Vault) writeRecords(category Category, digest string, payload []byte, dekExists bool) error {
	encoded, err := storage.Compress(payload, v.compression)
	if err != nil {
		return err
	}

	payloadPath := storage.PayloadPath(string(category), digest)

	if dekExists {
		rawDEK, err := v.backend.Read(storage.DEKPath(digest))
		if err != nil {
			return fmt.Errorf("vault: read DEK record: %w", err)
		}
		dekRec, err := envelope.UnmarshalRecord(rawDEK)
		if err != nil {
			return fmt.Errorf("vault: decode DEK record: %w", err)
		}
		dek, err := v.cipher.DecryptDEK(dekRec)
		if err != nil {
			return fmt.Errorf("vault: unwrap DEK for %s: %w", digest, err)
		}
		defer dek.Zeroize()

		dataRec, err := v.cipher.Encrypt(encoded, dek)
		if err != nil {
			return err
		}
		return v.backend.Write(payloadPath, dataRec.Marshal())
	}

	sealed, err := v.cipher.EnvelopeEncrypt(encoded)
	if err != nil {
		return err
	}
	if err := v.backend.Write(payloadPath, sealed.Data.Marshal()); err != nil {
		return err
	}
	return v.backend.Write(storage.DEKPath(digest), sealed.WrappedDEK.Marshal())
}

// writeMetadata persists a fresh metadata sidecar for (category, digest).
func (v *Vault) writeMetadata(category Category, digest string, size int64, fields Fields) error {
	meta := &Metadata{
		SHA256:         digest,
		Size:           size,
		MimeType:       fields.MimeType,
		StoredAt:       time.Now().UTC(),
		PerceptualHash: fields.PerceptualHash,
		CustomMetadata: fields.Custom,
	}
	if v.compression != storage.CompressNone {
		meta.Encoding = string(v.compression)
	}
	data, err := marshalMetadata(meta)
	if err != nil {
		return err
	}
	return v.backend.Write(storage.MetadataPath(string(category), digest), data)
}
