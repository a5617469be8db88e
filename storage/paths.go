package storage

import "fmt"

// Artifact filename suffixes. The DEK record always lives under the "keys"
// category regardless of the object's own category.
const (
	ExtPayload  = ".enc"
	ExtDEK      = ".dek.enc"
	ExtMetadata = ".meta.json"
)

// KeysCategory is the reserved category holding wrapped-DEK records.
const KeysCategory = "keys"

// ValidateDigest checks that digest is exactly 64 lowercase hex characters
// (a SHA-256 digest in its canonical text form).
func ValidateDigest(digest string) error {
	if len(digest) != 64 {
		return fmt.Errorf("%w: got %d characters", ErrInvalidDigest, len(digest))
	}
	for i := 0; i < len(digest); i++ {
		c := digest[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return fmt.Errorf("%w: invalid character %q", ErrInvalidDigest, c)
		}
	}
	return nil
}

// ShardedPath builds the relative artifact path for (category, digest):
//
//	{category}/{ab}/{cd}/{digest}{ext}
//
// where ab and cd are the first and second byte of the digest in hex.
// Sharding bounds directory fan-out only; it carries no semantic meaning
// and is reproducible from the digest alone.
func ShardedPath(category, digest, ext string) string {
	return category + "/" + digest[:2] + "/" + digest[2:4] + "/" + digest + ext
}

// PayloadPath returns the path of the encrypted payload record.
func PayloadPath(category, digest string) string {
	return ShardedPath(category, digest, ExtPayload)
}

// DEKPath returns the path of the wrapped-DEK record. DEK records share the
// object's digest but always live under the keys category.
func DEKPath(digest string) string {
	return ShardedPath(KeysCategory, digest, ExtDEK)
}

// MetadataPath returns the path of the metadata sidecar.
func MetadataPath(category, digest string) string {
	return ShardedPath(category, digest, ExtMetadata)
}
