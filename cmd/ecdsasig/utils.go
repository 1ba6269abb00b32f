package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mahdiidarabi/ecdsa-recoverable/internal/config"
	"github.com/mahdiidarabi/ecdsa-recoverable/internal/log"
	"github.com/mahdiidarabi/ecdsa-recoverable/pkg/ecdsasig"
	"github.com/urfave/cli"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

// loadConfig reads the --config file, if any, and applies flag overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString(ConfigFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if ctx.GlobalIsSet(LogFlag.Name) {
		cfg.LogLevel = ctx.GlobalString(LogFlag.Name)
	}
	if ctx.GlobalIsSet(BackendFlag.Name) {
		cfg.Backend = ctx.GlobalString(BackendFlag.Name)
	}
	if ctx.GlobalIsSet(HashFlag.Name) {
		cfg.Hash = ctx.GlobalString(HashFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		cfg.Workers = ctx.Int(WorkersFlag.Name)
	}
	if ctx.Bool(TimestampEntropyFlag.Name) {
		cfg.TimestampEntropy = true
	}
	if ctx.IsSet(PrefixFlag.Name) {
		cfg.Prefix = ctx.String(PrefixFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger points the global logger at the app error writer.
func setupLogger(ctx *cli.Context, cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	log.Patch(
		log.SetWriter(ctx.App.ErrWriter),
		log.SetLevel(level),
	)
	return nil
}

// newClient builds a client from the configuration and flags.
func newClient(ctx *cli.Context) (*ecdsasig.Client, *config.Config, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := setupLogger(ctx, cfg); err != nil {
		return nil, nil, err
	}

	kind, err := ecdsasig.ParseBackendKind(cfg.Backend)
	if err != nil {
		return nil, nil, err
	}
	hash, err := ecdsasig.HashByName(cfg.Hash)
	if err != nil {
		return nil, nil, err
	}
	logger.Debugf("config: backend=%s hash=%s workers=%d", cfg.Backend, cfg.Hash, cfg.Workers)

	client := ecdsasig.NewClient().
		WithBackend(kind).
		WithHash(hash).
		WithWorkers(cfg.Workers).
		WithProgressInterval(cfg.ProgressInterval).
		WithTimestampEntropy(cfg.TimestampEntropy).
		WithPrefix(cfg.Prefix)
	return client, cfg, nil
}

// readMessage returns the --message bytes, hex decoded when --hex is set.
func readMessage(ctx *cli.Context) ([]byte, error) {
	message := ctx.String(MessageFlag.Name)
	if !ctx.Bool(HexFlag.Name) {
		return []byte(message), nil
	}
	b, err := decodeHex(message)
	if err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return b, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

func requireFlag(ctx *cli.Context, name string) error {
	if ctx.String(name) == "" {
		return fmt.Errorf("missing required flag --%s", name)
	}
	return nil
}
