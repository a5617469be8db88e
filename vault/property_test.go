package vault

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVault_StoreRetrieveRoundTrip_Property(t *testing.T) {
	v := newTestVault(t)
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, 4096).Draw(t, "payload")
		mime := rapid.SampledFrom([]string{
			"image/jpeg", "image/png", "image/tiff", "application/octet-stream",
		}).Draw(t, "mime")

		res, err := v.Store(CategoryOriginals, payload, Fields{MimeType: mime})
		require.NoError(t, err)
		require.Equal(t, ComputeHash(payload), res.Hash)

		data, meta, err := v.Retrieve(CategoryOriginals, res.Hash)
		require.NoError(t, err)
		require.Equal(t, payload, data)
		require.Equal(t, res.Hash, meta.SHA256)
		require.Equal(t, int64(len(payload)), meta.Size)

		ok, err := v.Exists(CategoryOriginals, res.Hash)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestVault_StoreIsIdempotent_Property(t *testing.T) {
	v := newTestVault(t)
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, 1024).Draw(t, "payload")

		first, err := v.Store(CategoryRestored, payload, Fields{})
		require.NoError(t, err)
		second, err := v.Store(CategoryRestored, payload, Fields{})
		require.NoError(t, err)
		require.Equal(t, first.Hash, second.Hash)
		require.False(t, second.IsNew)
	})
}
