package vault

import (
	"errors"
	"fmt"

	"github.com/photovaultorg/libphotovault-go/storage"
)

// Delete destroys the object at (category, digest).
//
// The wrapped-DEK record is always removed. With eraseDEKOnly=false the
// payload record and metadata sidecar are removed as well. With
// eraseDEKOnly=true they remain on disk but the payload is permanently
// undecryptable — cryptographic erasure, the intended destruction
// mechanism for content that must become unrecoverable without touching
// the ciphertext.
//
// DEK records are keyed by digest alone, so if the same content is also
// stored in another category, deleting it here erases decryptability of
// the twin as well; the twin can be healed by re-storing the content.
// Returns ErrNotFound if no artifact exists for (category, digest).
func (v *Vault) Delete(category Category, digest string, eraseDEKOnly bool) error {
	if err := v.checkOpen(); err != nil {
		return err
	}
	if err := validatePublicCategory(category); err != nil {
		return err
	}
	if err := storage.ValidateDigest(digest); err != nil {
		return err
	}

	unlock := v.locks.lock(category, digest)
	defer unlock()

	st, err := v.stat(category, digest)
	if err != nil {
		return err
	}
	if !st.Payload && !st.DEK && !st.Metadata {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, category, digest)
	}

	if st.DEK {
		if err := v.removeArtifact(storage.DEKPath(digest)); err != nil {
			return err
		}
	}
	if eraseDEKOnly {
		return nil
	}

	if st.Payload {
		if err := v.removeArtifact(storage.PayloadPath(string(category), digest)); err != nil {
			return err
		}
	}
	if st.Metadata {
		if err := v.removeArtifact(storage.MetadataPath(string(category), digest)); err != nil {
			return err
		}
	}
	return nil
}

// removeArtifact deletes one artifact, tolerating a concurrent removal.
func (v *Vault) removeArtifact(path string) error {
	if err := v.backend.Remove(path); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}
