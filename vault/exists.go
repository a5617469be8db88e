package vault

import "github.com/photovaultorg/libphotovault-go/storage"

// Exists reports whether a payload record is present at (category, digest).
// Only the payload record is consulted: an object whose DEK was erased
// still exists in this sense, reflecting the on-disk state after a
// DEK-only delete.
func (v *Vault) Exists(category Category, digest string) (bool, error) {
	if err := v.checkOpen(); err != nil {
		return false, err
	}
	if err := validatePublicCategory(category); err != nil {
		return false, err
	}
	if err := storage.ValidateDigest(digest); err != nil {
		return false, err
	}
	return v.backend.Exists(storage.PayloadPath(string(category), digest))
}
