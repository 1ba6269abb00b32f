package main

import (
	"github.com/urfave/cli"
)

// Global flags
var (
	// ConfigFlag TOML configuration file
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	// LogFlag global log level
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Global log level. Supports levels crit (silent), eror, warn, info, dbug and trce (trace)",
	}
	// BackendFlag elliptic curve backend
	BackendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "Signing backend: auto, secp256k1, btcec or pure",
	}
	// HashFlag message digest
	HashFlag = cli.StringFlag{
		Name:  "hash",
		Usage: "Message hash: sha256, sha3-256, keccak256, blake2b-256 or blake3",
	}
)

// Command flags
var (
	// KeyFlag hex encoded private key
	KeyFlag = cli.StringFlag{
		Name:   "key",
		Usage:  "Hex encoded private key",
		EnvVar: "ECDSASIG_KEY",
	}
	// MessageFlag message to sign or verify
	MessageFlag = cli.StringFlag{
		Name:  "message",
		Usage: "Message to sign or verify",
	}
	// HexFlag treats the message as hex
	HexFlag = cli.BoolFlag{
		Name:  "hex",
		Usage: "Decode --message as hex instead of using its text bytes",
	}
	// SignatureFlag hex encoded compact signature
	SignatureFlag = cli.StringFlag{
		Name:  "signature",
		Usage: "Hex encoded 65-byte compact signature",
	}
	// PublicKeyFlag hex encoded compressed public key
	PublicKeyFlag = cli.StringFlag{
		Name:  "public-key",
		Usage: "Hex encoded 33-byte compressed public key",
	}
	// RecoveryParamFlag overrides the signature header
	RecoveryParamFlag = cli.IntFlag{
		Name:  "recovery-param",
		Usage: "Recovery parameter in [0, 3] to use instead of the signature header",
		Value: -1,
	}
	// TweakFlag hex encoded 32-byte tweak
	TweakFlag = cli.StringFlag{
		Name:  "tweak",
		Usage: "Hex encoded 32-byte scalar added to the public key",
	}
	// FormatFlag batch input format
	FormatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Signed messages file format (json or csv)",
		Value: "json",
	}
	// WorkersFlag batch verification parallelism
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Number of parallel workers (0 = one per CPU core)",
	}
	// TimestampEntropyFlag non-deterministic nonces
	TimestampEntropyFlag = cli.BoolFlag{
		Name:  "timestamp-entropy",
		Usage: "Mix the current time into signing nonces",
	}
	// PrefixFlag public key display prefix
	PrefixFlag = cli.StringFlag{
		Name:  "prefix",
		Usage: "Public key display prefix",
	}
)

var (
	// GlobalFlags are accepted by every command
	GlobalFlags = []cli.Flag{
		ConfigFlag,
		LogFlag,
		BackendFlag,
		HashFlag,
	}
)
