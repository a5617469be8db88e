package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Marshal / Unmarshal tests ---

func TestRecordRoundTrip(t *testing.T) {
	rec := &Record{
		Nonce:      []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Tag:        []byte{21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36},
		Ciphertext: []byte("opaque encrypted bytes"),
	}

	data := rec.Marshal()
	assert.Equal(t, byte(12), data[0])
	assert.Equal(t, byte(16), data[1])
	assert.Len(t, data, 2+12+16+len(rec.Ciphertext))

	got, err := UnmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec.Nonce, got.Nonce)
	assert.Equal(t, rec.Tag, got.Tag)
	assert.Equal(t, rec.Ciphertext, got.Ciphertext)
}

func TestRecordRoundTrip_EmptyCiphertext(t *testing.T) {
	rec := &Record{
		Nonce: make([]byte, NonceSize),
		Tag:   make([]byte, TagSize),
	}

	got, err := UnmarshalRecord(rec.Marshal())
	require.NoError(t, err)
	assert.Empty(t, got.Ciphertext)
}

func TestRecordLayout(t *testing.T) {
	// The on-disk layout is [nonceLen][tagLen][nonce][tag][ciphertext] and
	// must stay stable across releases.
	rec := &Record{
		Nonce:      []byte{0xAA, 0xBB},
		Tag:        []byte{0xCC},
		Ciphertext: []byte{0xDD, 0xEE},
	}
	assert.Equal(t, []byte{0x02, 0x01, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE}, rec.Marshal())
}

func TestUnmarshalRecord_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"header only", []byte{12, 16}},
		{"partial nonce", []byte{12, 16, 1, 2, 3}},
		{"missing tag", append([]byte{12, 16}, make([]byte, 12)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRecord(tt.data)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestUnmarshalRecord_ZeroLengths(t *testing.T) {
	_, err := UnmarshalRecord([]byte{0, 16, 1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = UnmarshalRecord([]byte{12, 0, 1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRecord_SurvivesSerializedDecrypt(t *testing.T) {
	// A record must decrypt identically after a marshal/unmarshal cycle,
	// since that cycle is exactly what persistence does.
	c := newTestCipher(t)
	dek, err := GenerateDEK()
	require.NoError(t, err)
	plaintext := []byte("persisted then reloaded")

	rec, err := c.Encrypt(plaintext, dek)
	require.NoError(t, err)

	reloaded, err := UnmarshalRecord(rec.Marshal())
	require.NoError(t, err)

	got, err := c.Decrypt(reloaded, dek)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}
