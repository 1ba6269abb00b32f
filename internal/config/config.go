// Package config holds the TOML configuration of the ecdsasig tooling.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
)

const (
	// DefaultProgressInterval is the number of signing attempts between
	// two "still searching" log lines.
	DefaultProgressInterval = 20

	// DefaultPrefix is the public key display prefix.
	DefaultPrefix = "STM"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the configuration file layout.
type Config struct {
	// Backend forces an elliptic curve backend, or "auto" to probe.
	Backend string `toml:"backend" validate:"oneof=auto secp256k1 btcec pure"`
	// Hash names the digest function applied to messages.
	Hash string `toml:"hash" validate:"oneof=sha256 sha3-256 keccak256 blake2b-256 blake3"`
	// LogLevel is one of trce, dbug, info, warn, eror, crit.
	LogLevel string `toml:"log-level" validate:"required"`
	// TimestampEntropy mixes the wall clock into nonce derivation.
	TimestampEntropy bool `toml:"timestamp-entropy"`
	// ProgressInterval is the signing attempt interval between progress logs.
	ProgressInterval int `toml:"progress-interval" validate:"gte=1"`
	// Workers bounds batch verification parallelism, 0 means one per CPU.
	Workers int `toml:"workers" validate:"gte=0"`
	// Prefix is prepended to displayed public keys.
	Prefix string `toml:"prefix" validate:"required,alphanum"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend:          "auto",
		Hash:             "sha256",
		LogLevel:         "info",
		ProgressInterval: DefaultProgressInterval,
		Prefix:           DefaultPrefix,
	}
}

// Load reads the TOML file at path on top of the default configuration
// and validates the result.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads TOML from r on top of the default configuration
// and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return nil
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
