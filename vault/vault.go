// Package vault implements the content-addressed, envelope-encrypted blob
// store engine. Objects are identified by the SHA-256 digest of their
// plaintext, encrypted under per-object DEKs wrapped by a master key, and
// persisted as three artifacts: the payload record, the wrapped-DEK record
// (under the reserved keys category), and a JSON metadata sidecar.
//
// The engine exposes five operations — Store, Retrieve, Delete, Exists, and
// ComputeHash — and nothing else. Deleting only the wrapped DEK performs
// cryptographic erasure: the payload ciphertext stays on disk but is
// permanently unrecoverable.
package vault

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/photovaultorg/libphotovault-go/config"
	"github.com/photovaultorg/libphotovault-go/envelope"
	"github.com/photovaultorg/libphotovault-go/storage"
)

// Vault is the store engine. Safe for concurrent use; every operation is a
// synchronous unit of work with no internal scheduler, cancellation, or
// retry. Callers impose timeouts and retry policy externally.
type Vault struct {
	backend     storage.Backend
	cipher      *envelope.Cipher
	compression storage.Scheme
	log         logrus.FieldLogger
	locks       lockTable
	closed      bool
}

// Option configures a Vault at construction.
type Option func(*Vault)

// WithLogger injects a structured logger. Integrity and authentication
// failures are logged at error level; key material is never logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(v *Vault) { v.log = log }
}

// WithCompression enables plaintext compression before encryption.
func WithCompression(scheme storage.Scheme) Option {
	return func(v *Vault) { v.compression = scheme }
}

// New creates a Vault over an explicit backend and raw KEK material. The
// KEK is copied; the caller may zeroize its buffer afterwards. A KEK
// shorter than 32 bytes fails here, at startup, not per call.
func New(backend storage.Backend, kek []byte, alg envelope.Algorithm, opts ...Option) (*Vault, error) {
	cipher, err := envelope.NewCipher(kek, alg)
	if err != nil {
		return nil, err
	}

	v := &Vault{
		backend:     backend,
		cipher:      cipher,
		compression: storage.CompressNone,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		v.log = silent
	}
	if _, err := storage.ParseScheme(string(v.compression)); err != nil {
		cipher.Close()
		return nil, err
	}
	return v, nil
}

// Open creates a Vault from a validated configuration: a sharded filesystem
// backend rooted at cfg.BasePath, the KEK resolved from the configured
// source, and the configured algorithm and compression scheme.
func Open(cfg config.Config, opts ...Option) (*Vault, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	backend, err := storage.NewFSBackend(cfg.BasePath, cfg.AutoCreateDirs)
	if err != nil {
		return nil, fmt.Errorf("vault: init backend: %w", err)
	}

	kek, err := cfg.MasterKey()
	if err != nil {
		return nil, err
	}
	defer envelope.Key(kek).Zeroize()

	scheme, err := storage.ParseScheme(cfg.Compression)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithCompression(scheme)}, opts...)
	return New(backend, kek, envelope.Algorithm(cfg.Algorithm), opts...)
}

// Close zeroizes the in-memory KEK and releases the backend if it holds
// resources. The vault must not be used afterwards.
func (v *Vault) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	_ = v.cipher.Close()
	if closer, ok := v.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// checkOpen guards operations on a closed vault.
func (v *Vault) checkOpen() error {
	if v.closed {
		return ErrClosed
	}
	return nil
}

// ArtifactStatus reports which of an object's three artifacts are present.
// Used by the healing logic and by erasure-policy tooling upstream.
type ArtifactStatus struct {
	Payload  bool
	DEK      bool
	Metadata bool
}

// Complete reports whether all three artifacts are present.
func (s ArtifactStatus) Complete() bool {
	return s.Payload && s.DEK && s.Metadata
}

// Stat returns the artifact presence for (category, digest).
func (v *Vault) Stat(category Category, digest string) (ArtifactStatus, error) {
	var st ArtifactStatus
	if err := v.checkOpen(); err != nil {
		return st, err
	}
	if err := validatePublicCategory(category); err != nil {
		return st, err
	}
	if err := storage.ValidateDigest(digest); err != nil {
		return st, err
	}
	return v.stat(category, digest)
}

// stat probes the backend for the three artifact paths.
func (v *Vault) stat(category Category, digest string) (ArtifactStatus, error) {
	var st ArtifactStatus
	var err error
	if st.Payload, err = v.backend.Exists(storage.PayloadPath(string(category), digest)); err != nil {
		return st, err
	}
	if st.DEK, err = v.backend.Exists(storage.DEKPath(digest)); err != nil {
		return st, err
	}
	if st.Metadata, err = v.backend.Exists(storage.MetadataPath(string(category), digest)); err != nil {
		return st, err
	}
	return st, nil
}
