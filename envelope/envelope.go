package envelope

// Sealed is the output of a full envelope encryption: the payload encrypted
// under a fresh DEK, and that DEK wrapped under the KEK.
type Sealed struct {
	// Data is the payload encrypted under the per-object DEK.
	Data *Record

	// WrappedDEK is the DEK encrypted under the KEK. Destroying this record
	// makes Data permanently undecryptable.
	WrappedDEK *Record
}

// EnvelopeEncrypt generates a fresh DEK, encrypts payload under it, and
// wraps the DEK under the KEK. The plaintext DEK is zeroized before this
// function returns on every path, success or failure.
func (c *Cipher) EnvelopeEncrypt(payload []byte) (*Sealed, error) {
	dek, err := GenerateDEK()
	if err != nil {
		return nil, err
	}
	defer dek.Zeroize()

	data, err := c.Encrypt(payload, dek)
	if err != nil {
		return nil, err
	}
	wrapped, err := c.EncryptDEK(dek)
	if err != nil {
		return nil, err
	}
	return &Sealed{Data: data, WrappedDEK: wrapped}, nil
}

// EnvelopeDecrypt unwraps the DEK under the KEK and decrypts the payload
// record with it. The plaintext DEK is zeroized before this function
// returns on every path.
func (c *Cipher) EnvelopeDecrypt(data, wrappedDEK *Record) ([]byte, error) {
	dek, err := c.DecryptDEK(wrappedDEK)
	if err != nil {
		return nil, err
	}
	defer dek.Zeroize()

	return c.Decrypt(data, dek)
}
