package vault

import (
	"encoding/json"
	"fmt"
	"time"
)

// Metadata is the sidecar record stored alongside every object. Immutable
// after first write: re-storing the same content leaves the original
// metadata untouched.
type Metadata struct {
	// SHA256 is the object's content digest, 64 hex characters.
	SHA256 string `json:"sha256"`

	// Size is the original plaintext size in bytes.
	Size int64 `json:"size"`

	// MimeType is the caller-declared MIME type.
	MimeType string `json:"mimeType"`

	// StoredAt is the creation timestamp (RFC 3339, UTC).
	StoredAt time.Time `json:"storedAt"`

	// PerceptualHash is opaque caller-supplied similarity metadata.
	PerceptualHash string `json:"perceptualHash,omitempty"`

	// Encoding names the compression scheme applied to the plaintext
	// before encryption. Absent means none.
	Encoding string `json:"encoding,omitempty"`

	// CustomMetadata carries open-ended caller-supplied fields.
	CustomMetadata map[string]string `json:"customMetadata,omitempty"`
}

// Fields is the caller-supplied descriptive metadata for Store.
type Fields struct {
	MimeType       string
	PerceptualHash string
	Custom         map[string]string
}

// marshalMetadata serializes a metadata sidecar as JSON.
func marshalMetadata(m *Metadata) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("vault: encode metadata: %w", err)
	}
	return data, nil
}

// unmarshalMetadata parses a metadata sidecar.
func unmarshalMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("vault: decode metadata: %w", err)
	}
	return &m, nil
}
