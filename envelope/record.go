package envelope

import "fmt"

// Record holds the three parts of an AEAD encryption result. The same shape
// is used for payload records and wrapped-DEK records so both round-trip
// through the same (de)serialization pair.
type Record struct {
	// Nonce is the random per-encryption nonce (12 bytes).
	Nonce []byte

	// Tag is the AEAD authentication tag (16 bytes).
	Tag []byte

	// Ciphertext is the encrypted payload without nonce or tag.
	// Empty for an empty plaintext.
	Ciphertext []byte
}

// recordHeaderLen is the fixed prefix: 1 byte nonce length, 1 byte tag length.
const recordHeaderLen = 2

// Marshal serializes the record into the fixed binary layout:
//
//	[nonceLen:u8][tagLen:u8][nonce][tag][ciphertext...]
//
// This layout is the on-disk storage format and must not change; altering
// it is a breaking storage-format change.
func (r *Record) Marshal() []byte {
	buf := make([]byte, recordHeaderLen+len(r.Nonce)+len(r.Tag)+len(r.Ciphertext))
	buf[0] = byte(len(r.Nonce))
	buf[1] = byte(len(r.Tag))
	off := recordHeaderLen
	off += copy(buf[off:], r.Nonce)
	off += copy(buf[off:], r.Tag)
	copy(buf[off:], r.Ciphertext)
	return buf
}

// UnmarshalRecord parses the fixed binary layout produced by Marshal.
// Returns ErrInvalidRecord if the data is truncated or the declared
// nonce/tag lengths are zero.
func UnmarshalRecord(data []byte) (*Record, error) {
	if len(data) < recordHeaderLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidRecord, len(data), recordHeaderLen)
	}
	nonceLen := int(data[0])
	tagLen := int(data[1])
	if nonceLen == 0 || tagLen == 0 {
		return nil, fmt.Errorf("%w: zero nonce or tag length", ErrInvalidRecord)
	}
	if len(data) < recordHeaderLen+nonceLen+tagLen {
		return nil, fmt.Errorf("%w: truncated at %d bytes", ErrInvalidRecord, len(data))
	}

	off := recordHeaderLen
	rec := &Record{
		Nonce:      make([]byte, nonceLen),
		Tag:        make([]byte, tagLen),
		Ciphertext: make([]byte, len(data)-recordHeaderLen-nonceLen-tagLen),
	}
	off += copy(rec.Nonce, data[off:off+nonceLen])
	off += copy(rec.Tag, data[off:off+tagLen])
	copy(rec.Ciphertext, data[off:])
	return rec, nil
}
