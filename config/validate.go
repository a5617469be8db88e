package config

import "strings"

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid. The
// master key source is checked for presence only; Config.MasterKey performs
// the material checks.
func ValidateConfig(cfg Config) error {
	if cfg.BasePath == "" {
		return ErrEmptyBasePath
	}

	if cfg.MasterKeyHex == "" && cfg.MasterKeyFile == "" {
		return ErrMissingMasterKey
	}
	if cfg.MasterKeyHex != "" && cfg.MasterKeyFile != "" {
		return ErrAmbiguousMasterKey
	}

	switch cfg.Algorithm {
	case "", "aes256gcm", "chacha20poly1305":
	default:
		return ErrInvalidAlgorithm
	}

	switch cfg.Compression {
	case "", "none", "gzip", "zstd":
	default:
		return ErrInvalidCompression
	}

	if cfg.LogLevel != "" && !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
