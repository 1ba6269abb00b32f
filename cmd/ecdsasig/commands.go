package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mahdiidarabi/ecdsa-recoverable/pkg/ecdsasig"
	"github.com/urfave/cli"
)

var (
	signCommand = cli.Command{
		Action:    signAction,
		Name:      "sign",
		Usage:     "Sign a message with a private key",
		ArgsUsage: "",
		Flags: []cli.Flag{
			KeyFlag,
			MessageFlag,
			HexFlag,
			TimestampEntropyFlag,
		},
		Description: "The sign command prints the 65-byte compact signature of --message as hex.\n" +
			"\tUsage: ecdsasig sign --key <hex> --message \"hello world\"",
	}
	verifyCommand = cli.Command{
		Action: verifyAction,
		Name:   "verify",
		Usage:  "Recover the signer of a compact signature",
		Flags: []cli.Flag{
			MessageFlag,
			HexFlag,
			SignatureFlag,
			PublicKeyFlag,
			RecoveryParamFlag,
			PrefixFlag,
		},
		Description: "The verify command recovers and checks the public key of --signature.\n" +
			"\tWith --public-key the recovered key must match it.\n" +
			"\tUsage: ecdsasig verify --message \"hello world\" --signature <hex>",
	}
	recoverParamCommand = cli.Command{
		Action: recoverParamAction,
		Name:   "recover-param",
		Usage:  "Find the recovery parameter of a signature for a public key",
		Flags: []cli.Flag{
			MessageFlag,
			HexFlag,
			SignatureFlag,
			PublicKeyFlag,
		},
		Description: "The recover-param command accepts r ‖ s or a compact signature.\n" +
			"\tUsage: ecdsasig recover-param --message \"hello world\" --signature <hex> --public-key <hex>",
	}
	pubkeyCommand = cli.Command{
		Action: pubkeyAction,
		Name:   "pubkey",
		Usage:  "Derive the public key of a private key",
		Flags: []cli.Flag{
			KeyFlag,
			PrefixFlag,
		},
		Description: "The pubkey command prints the compressed and display forms of the public key.\n" +
			"\tUsage: ecdsasig pubkey --key <hex>",
	}
	tweakCommand = cli.Command{
		Action: tweakAction,
		Name:   "tweak",
		Usage:  "Add tweak·G to a public key",
		Flags: []cli.Flag{
			PublicKeyFlag,
			TweakFlag,
			PrefixFlag,
		},
		Description: "The tweak command prints public-key + tweak·G.\n" +
			"\tUsage: ecdsasig tweak --public-key <hex> --tweak <hex>",
	}
	verifyBatchCommand = cli.Command{
		Action:    verifyBatchAction,
		Name:      "verify-batch",
		Usage:     "Verify every signed message of a JSON or CSV file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			FormatFlag,
			WorkersFlag,
		},
		Description: "The verify-batch command prints one line per signed message.\n" +
			"\tUsage: ecdsasig verify-batch --format csv signed_messages.csv",
	}
	backendsCommand = cli.Command{
		Action: backendsAction,
		Name:   "backends",
		Usage:  "Self test every signing backend",
		Description: "The backends command lists the backends in preference order with their self test result.\n" +
			"\tUsage: ecdsasig backends",
	}
	configCommand = cli.Command{
		Action: configAction,
		Name:   "config",
		Usage:  "Print the effective configuration",
		Description: "The config command prints the configuration after flag overrides as TOML.\n" +
			"\tUsage: ecdsasig --config config.toml config",
	}
)

func signAction(ctx *cli.Context) error {
	if err := requireFlag(ctx, KeyFlag.Name); err != nil {
		return err
	}
	client, _, err := newClient(ctx)
	if err != nil {
		return err
	}

	key, err := ecdsasig.PrivateKeyFromHex(ctx.String(KeyFlag.Name))
	if err != nil {
		return err
	}
	message, err := readMessage(ctx)
	if err != nil {
		return err
	}

	sig, err := client.Sign(message, key)
	if err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, sig.Hex())
	return nil
}

func verifyAction(ctx *cli.Context) error {
	if err := requireFlag(ctx, SignatureFlag.Name); err != nil {
		return err
	}
	client, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}

	message, err := readMessage(ctx)
	if err != nil {
		return err
	}
	sig, err := decodeHex(ctx.String(SignatureFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	var opts []ecdsasig.VerifyOption
	if ctx.IsSet(RecoveryParamFlag.Name) {
		opts = append(opts, ecdsasig.WithRecoveryParam(ctx.Int(RecoveryParamFlag.Name)))
	}

	pub, err := client.Verify(message, sig, opts...)
	if err != nil {
		return fmt.Errorf("failed to verify: %w", err)
	}

	if expected := ctx.String(PublicKeyFlag.Name); expected != "" {
		want, err := ecdsasig.ParseCompressedPublicKeyHex(expected)
		if err != nil {
			return err
		}
		if !bytes.Equal(want[:], pub[:]) {
			return fmt.Errorf("signature was made by %s, not %s", pub.Hex(), want.Hex())
		}
	}

	fmt.Fprintf(ctx.App.Writer, "public key: %s\n", pub.Hex())
	fmt.Fprintf(ctx.App.Writer, "address: %s\n", ecdsasig.NewPublicKey(pub, cfg.Prefix))
	return nil
}

func recoverParamAction(ctx *cli.Context) error {
	for _, name := range []string{SignatureFlag.Name, PublicKeyFlag.Name} {
		if err := requireFlag(ctx, name); err != nil {
			return err
		}
	}
	client, _, err := newClient(ctx)
	if err != nil {
		return err
	}

	message, err := readMessage(ctx)
	if err != nil {
		return err
	}
	sig, err := decodeHex(ctx.String(SignatureFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}
	pub, err := ecdsasig.ParseCompressedPublicKeyHex(ctx.String(PublicKeyFlag.Name))
	if err != nil {
		return err
	}

	param, err := client.RecoverParameter(message, sig, pub)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, param)
	return nil
}

func pubkeyAction(ctx *cli.Context) error {
	if err := requireFlag(ctx, KeyFlag.Name); err != nil {
		return err
	}
	client, _, err := newClient(ctx)
	if err != nil {
		return err
	}

	key, err := ecdsasig.PrivateKeyFromHex(ctx.String(KeyFlag.Name))
	if err != nil {
		return err
	}
	pub, err := client.PublicKey(key)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "public key: %s\n", pub.Key.Hex())
	fmt.Fprintf(ctx.App.Writer, "address: %s\n", pub)
	return nil
}

func tweakAction(ctx *cli.Context) error {
	for _, name := range []string{PublicKeyFlag.Name, TweakFlag.Name} {
		if err := requireFlag(ctx, name); err != nil {
			return err
		}
	}
	_, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}

	pub, err := ecdsasig.ParseCompressedPublicKeyHex(ctx.String(PublicKeyFlag.Name))
	if err != nil {
		return err
	}
	raw, err := decodeHex(ctx.String(TweakFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to decode tweak: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("tweak must be 32 bytes, got %d", len(raw))
	}
	var tweak [32]byte
	copy(tweak[:], raw)

	tweaked, err := ecdsasig.TweakAddPublicKey(pub, tweak)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "public key: %s\n", tweaked.Hex())
	fmt.Fprintf(ctx.App.Writer, "address: %s\n", ecdsasig.NewPublicKey(tweaked, cfg.Prefix))
	return nil
}

func verifyBatchAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument, got %d", ctx.NArg())
	}
	client, _, err := newClient(ctx)
	if err != nil {
		return err
	}

	switch format := ctx.String(FormatFlag.Name); format {
	case "json":
		client = client.WithParser(&ecdsasig.JSONParser{})
	case "csv":
		client = client.WithParser(&ecdsasig.CSVParser{})
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := client.VerifyFile(runCtx, ctx.Args().First())
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if !result.Valid() {
			failed++
			fmt.Fprintf(ctx.App.Writer, "%d\tinvalid\t%v\n", result.Index, result.Err)
			continue
		}
		fmt.Fprintf(ctx.App.Writer, "%d\tvalid\t%s\n", result.Index, result.PublicKey.Hex())
	}
	fmt.Fprintf(ctx.App.Writer, "%d of %d signatures valid\n", len(results)-failed, len(results))

	if failed > 0 {
		return fmt.Errorf("%d signature(s) failed verification", failed)
	}
	return nil
}

func backendsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err := setupLogger(ctx, cfg); err != nil {
		return err
	}

	kinds := []ecdsasig.BackendKind{
		ecdsasig.BackendSecp256k1,
		ecdsasig.BackendBtcec,
		ecdsasig.BackendPure,
	}
	for _, kind := range kinds {
		if _, err := ecdsasig.NewBackend(kind); err != nil {
			fmt.Fprintf(ctx.App.Writer, "%s\tunavailable\t%v\n", kind, err)
			continue
		}
		fmt.Fprintf(ctx.App.Writer, "%s\tok\n", kind)
	}
	return nil
}

func configAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return cfg.Write(ctx.App.Writer)
}
