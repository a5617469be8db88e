package vault

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeHash returns the content identity of a payload: the SHA-256 digest
// of its raw bytes as 64 lowercase hex characters. Identity is derived,
// never assigned — byte-identical payloads always collapse to the same
// digest. Pure function, no side effects.
func ComputeHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
