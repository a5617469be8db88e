// Package config holds the blob store engine configuration: where artifacts
// live, where the master key (KEK) comes from, and which cipher and
// compression codecs the engine uses. The engine never persists the master
// key; this package only resolves it from the configured source.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MasterKeyMinLen is the minimum raw master key length in bytes. The first
// 32 bytes of the material are used as the AES-256/ChaCha20 key.
const MasterKeyMinLen = 32

// Config is the engine configuration.
type Config struct {
	// BasePath is the root directory of the store.
	BasePath string `yaml:"base_path"`

	// AutoCreateDirs creates the base path on startup when true. Shard
	// subdirectories are always created on demand.
	AutoCreateDirs bool `yaml:"auto_create_dirs"`

	// MasterKeyHex is the KEK material as a hex string. Mutually exclusive
	// with MasterKeyFile.
	MasterKeyHex string `yaml:"master_key_hex,omitempty"`

	// MasterKeyFile is a path to a file holding raw KEK bytes. Mutually
	// exclusive with MasterKeyHex.
	MasterKeyFile string `yaml:"master_key_file,omitempty"`

	// Algorithm selects the AEAD primitive: "aes256gcm" (default) or
	// "chacha20poly1305".
	Algorithm string `yaml:"algorithm"`

	// Compression selects the payload compression scheme applied before
	// encryption: "none" (default), "gzip", or "zstd".
	Compression string `yaml:"compression"`

	// LogLevel is the engine log level: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values. BasePath defaults to
// ~/.photovault/store.
func DefaultConfig() Config {
	base := ".photovault/store"
	if home, err := os.UserHomeDir(); err == nil {
		base = home + string(os.PathSeparator) + ".photovault" + string(os.PathSeparator) + "store"
	}
	return Config{
		BasePath:       base,
		AutoCreateDirs: true,
		Algorithm:      "aes256gcm",
		Compression:    "none",
		LogLevel:       "info",
	}
}

// LoadConfig reads a YAML configuration file. Unset fields keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as YAML with owner-only permissions.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// MasterKey resolves the raw KEK bytes from the configured source and
// validates the minimum length. Callers should zeroize the returned buffer
// once the cipher has copied it.
func (c Config) MasterKey() ([]byte, error) {
	switch {
	case c.MasterKeyHex != "" && c.MasterKeyFile != "":
		return nil, ErrAmbiguousMasterKey
	case c.MasterKeyHex != "":
		raw, err := hex.DecodeString(strings.TrimSpace(c.MasterKeyHex))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMasterKey, err)
		}
		return checkKeyLen(raw)
	case c.MasterKeyFile != "":
		raw, err := os.ReadFile(c.MasterKeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMasterKey, err)
		}
		return checkKeyLen(raw)
	default:
		return nil, ErrMissingMasterKey
	}
}

// checkKeyLen enforces the minimum master key length.
func checkKeyLen(raw []byte) ([]byte, error) {
	if len(raw) < MasterKeyMinLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMasterKeyTooShort, len(raw))
	}
	return raw, nil
}
