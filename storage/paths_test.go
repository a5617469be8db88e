package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testDigest = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

// --- ValidateDigest tests ---

func TestValidateDigest(t *testing.T) {
	assert.NoError(t, ValidateDigest(testDigest))
}

func TestValidateDigest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"too short", testDigest[:63]},
		{"too long", testDigest + "0"},
		{"uppercase", strings.ToUpper(testDigest)},
		{"non-hex", strings.Replace(testDigest, "2", "g", 1)},
		{"path separator", "../" + testDigest[3:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateDigest(tt.digest), ErrInvalidDigest)
		})
	}
}

// --- Path construction tests ---

func TestShardedPath(t *testing.T) {
	// Two-level shard from the first two bytes of the hex digest.
	got := ShardedPath("originals", testDigest, ExtPayload)
	assert.Equal(t, "originals/2c/f2/"+testDigest+".enc", got)
}

func TestPayloadPath(t *testing.T) {
	assert.Equal(t, "restored/2c/f2/"+testDigest+".enc", PayloadPath("restored", testDigest))
}

func TestDEKPath_AlwaysUnderKeys(t *testing.T) {
	// DEK records live under the keys category regardless of the object's
	// own category, keyed by the same digest.
	assert.Equal(t, "keys/2c/f2/"+testDigest+".dek.enc", DEKPath(testDigest))
}

func TestMetadataPath(t *testing.T) {
	assert.Equal(t, "originals/2c/f2/"+testDigest+".meta.json", MetadataPath("originals", testDigest))
}

func TestShardedPath_ReproducibleFromDigestAlone(t *testing.T) {
	// No stored index: the same digest always maps to the same path.
	assert.Equal(t,
		PayloadPath("originals", testDigest),
		PayloadPath("originals", testDigest))
}
