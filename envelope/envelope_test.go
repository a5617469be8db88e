package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- EnvelopeEncrypt / EnvelopeDecrypt tests ---

func TestEnvelope_RoundTrip(t *testing.T) {
	c := newTestCipher(t)
	payload := []byte("scanned negative, roll 7, frame 21")

	sealed, err := c.EnvelopeEncrypt(payload)
	require.NoError(t, err)
	require.NotNil(t, sealed.Data)
	require.NotNil(t, sealed.WrappedDEK)

	got, err := c.EnvelopeDecrypt(sealed.Data, sealed.WrappedDEK)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestEnvelope_FreshDEKPerObject(t *testing.T) {
	c := newTestCipher(t)
	payload := []byte("identical payload")

	s1, err := c.EnvelopeEncrypt(payload)
	require.NoError(t, err)
	s2, err := c.EnvelopeEncrypt(payload)
	require.NoError(t, err)

	// Different DEKs and nonces mean nothing about the two envelopes matches.
	assert.NotEqual(t, s1.WrappedDEK.Ciphertext, s2.WrappedDEK.Ciphertext)
	assert.NotEqual(t, s1.Data.Ciphertext, s2.Data.Ciphertext)
}

func TestEnvelope_WrongKEK(t *testing.T) {
	c1 := newTestCipher(t)
	c2, err := NewCipher(makeKEK(0x7F), AlgorithmAESGCM)
	require.NoError(t, err)

	sealed, err := c1.EnvelopeEncrypt([]byte("private"))
	require.NoError(t, err)

	_, err = c2.EnvelopeDecrypt(sealed.Data, sealed.WrappedDEK)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestEnvelope_TamperedWrappedDEK(t *testing.T) {
	c := newTestCipher(t)
	sealed, err := c.EnvelopeEncrypt([]byte("private"))
	require.NoError(t, err)

	sealed.WrappedDEK.Ciphertext[0] ^= 0x01
	_, err = c.EnvelopeDecrypt(sealed.Data, sealed.WrappedDEK)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestEnvelope_TamperedData(t *testing.T) {
	c := newTestCipher(t)
	sealed, err := c.EnvelopeEncrypt([]byte("private"))
	require.NoError(t, err)

	sealed.Data.Tag[TagSize-1] ^= 0x80
	_, err = c.EnvelopeDecrypt(sealed.Data, sealed.WrappedDEK)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestEnvelope_EmptyPayload(t *testing.T) {
	c := newTestCipher(t)
	sealed, err := c.EnvelopeEncrypt(nil)
	require.NoError(t, err)

	got, err := c.EnvelopeDecrypt(sealed.Data, sealed.WrappedDEK)
	require.NoError(t, err)
	assert.Empty(t, got)
}
