// Command ecdsasig signs and verifies messages with canonical recoverable
// secp256k1 ECDSA signatures.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

// app is the cli application
var app = newApp(os.Stdout, os.Stderr)

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "ecdsasig"
	app.Usage = "Canonical recoverable secp256k1 signatures"
	app.Version = "0.1.0"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = GlobalFlags
	app.Commands = []cli.Command{
		signCommand,
		verifyCommand,
		recoverParamCommand,
		pubkeyCommand,
		tweakCommand,
		verifyBatchCommand,
		backendsCommand,
		configCommand,
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
