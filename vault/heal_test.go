package vault

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photovaultorg/libphotovault-go/storage"
)

// Crash-recovery healing: a Store of content whose artifact set is
// incomplete deterministically rewrites the missing pieces.

func TestStore_HealsMissingDEK(t *testing.T) {
	v := newTestVault(t)
	payload := []byte("crashed between writes")
	res, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "text/plain"})
	require.NoError(t, err)

	require.NoError(t, os.Remove(artifactFile(v, storage.DEKPath(res.Hash))))

	healed, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, res.Hash, healed.Hash)
	assert.False(t, healed.IsNew, "the identity already existed")

	data, _, err := v.Retrieve(CategoryOriginals, res.Hash)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestStore_HealsMissingPayload(t *testing.T) {
	v := newTestVault(t)
	payload := []byte("payload record lost")
	res, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "text/plain"})
	require.NoError(t, err)

	require.NoError(t, os.Remove(artifactFile(v, storage.PayloadPath("originals", res.Hash))))

	healed, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, res.Hash, healed.Hash)
	assert.True(t, healed.IsNew, "the payload record had to be recreated")

	data, _, err := v.Retrieve(CategoryOriginals, res.Hash)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestStore_HealsMissingMetadata(t *testing.T) {
	v := newTestVault(t)
	payload := []byte("sidecar lost")
	res, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "text/plain"})
	require.NoError(t, err)

	require.NoError(t, os.Remove(artifactFile(v, storage.MetadataPath("originals", res.Hash))))

	healed, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "image/tiff"})
	require.NoError(t, err)
	assert.False(t, healed.IsNew)

	// Payload and DEK records were untouched; only the sidecar was rewritten.
	data, meta, err := v.Retrieve(CategoryOriginals, res.Hash)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/tiff", meta.MimeType)
}

func TestStore_HealsAfterCryptoErasure(t *testing.T) {
	// Re-storing the exact content of a DEK-erased object resurrects it:
	// the caller provably holds the plaintext, so nothing is leaked.
	v := newTestVault(t)
	payload := []byte("erased then re-ingested")
	res, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "text/plain"})
	require.NoError(t, err)

	require.NoError(t, v.Delete(CategoryOriginals, res.Hash, true))
	_, _, err = v.Retrieve(CategoryOriginals, res.Hash)
	require.ErrorIs(t, err, ErrDEKMissing)

	healed, err := v.Store(CategoryOriginals, payload, Fields{MimeType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, res.Hash, healed.Hash)

	data, _, err := v.Retrieve(CategoryOriginals, res.Hash)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestStore_ReusesExistingDEKAcrossCategories(t *testing.T) {
	// The wrapped DEK is keyed by digest alone; the second category must
	// reuse it so the first category's payload record stays decryptable.
	v := newTestVault(t)
	payload := []byte("shared DEK between categories")

	res, err := v.Store(CategoryOriginals, payload, Fields{})
	require.NoError(t, err)
	dekBefore, err := os.ReadFile(artifactFile(v, storage.DEKPath(res.Hash)))
	require.NoError(t, err)

	_, err = v.Store(CategoryRestored, payload, Fields{})
	require.NoError(t, err)
	dekAfter, err := os.ReadFile(artifactFile(v, storage.DEKPath(res.Hash)))
	require.NoError(t, err)
	assert.Equal(t, dekBefore, dekAfter, "DEK record must not be replaced")

	// Both categories decrypt.
	d1, _, err := v.Retrieve(CategoryOriginals, res.Hash)
	require.NoError(t, err)
	d2, _, err := v.Retrieve(CategoryRestored, res.Hash)
	require.NoError(t, err)
	assert.Equal(t, payload, d1)
	assert.Equal(t, payload, d2)
}
