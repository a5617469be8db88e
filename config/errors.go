package config

import "errors"

var (
	// ErrEmptyBasePath indicates the base storage path is empty.
	ErrEmptyBasePath = errors.New("config: base path must not be empty")

	// ErrMissingMasterKey indicates no master key source is configured.
	ErrMissingMasterKey = errors.New("config: master key source is required")

	// ErrAmbiguousMasterKey indicates both inline hex and a key file were given.
	ErrAmbiguousMasterKey = errors.New("config: configure either master_key_hex or master_key_file, not both")

	// ErrInvalidMasterKey indicates the master key material is not valid hex
	// or could not be read.
	ErrInvalidMasterKey = errors.New("config: invalid master key material")

	// ErrMasterKeyTooShort indicates the master key material is shorter than
	// 32 bytes. The first 32 bytes are used as the AES-256 key.
	ErrMasterKeyTooShort = errors.New("config: master key must be at least 32 bytes")

	// ErrInvalidAlgorithm indicates the cipher algorithm name is not recognized.
	ErrInvalidAlgorithm = errors.New("config: invalid algorithm (must be \"aes256gcm\" or \"chacha20poly1305\")")

	// ErrInvalidCompression indicates the compression scheme is not recognized.
	ErrInvalidCompression = errors.New("config: invalid compression (must be \"none\", \"gzip\", or \"zstd\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)
