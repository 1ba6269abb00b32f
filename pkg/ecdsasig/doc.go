// Package ecdsasig produces and verifies canonical, publicly recoverable
// ECDSA signatures on secp256k1.
//
// A signature is 65 bytes: a header byte i + 31, where i in [0, 3] is the
// recovery parameter, followed by the big-endian r and s scalars. Signers
// only emit canonical signatures, whose r and s both DER-encode to exactly
// 32 bytes, retrying with fresh RFC 6979 nonces until one is found.
// Verifiers recover the signer's compressed public key from the signature
// and the message digest.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/ecdsa-recoverable/pkg/ecdsasig"
//
//	client := ecdsasig.NewClient()
//
//	key, err := ecdsasig.PrivateKeyFromHex("0x...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := client.Sign([]byte("hello"), key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pub, err := client.Verify([]byte("hello"), sig.Bytes())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(pub.Hex())
//
// # Backends
//
// Three backends implement the Backend interface and produce byte-identical
// output:
//
//	BackendSecp256k1  libsecp256k1 with cgo, decred's secp256k1 without
//	BackendBtcec      btcec Jacobian arithmetic
//	BackendPure       math/big affine arithmetic
//
// SelectBackend fixes the process backend once; BackendAuto takes the first
// one passing its self test in the order above. NewBackend builds a backend
// outside of the process selection, which is handy for cross-checking:
//
//	pure, err := ecdsasig.NewBackend(ecdsasig.BackendPure)
//	client := ecdsasig.NewClient().WithBackendInstance(pure)
//
// # Batch Verification
//
// Signed messages can be verified in bulk from JSON or CSV files:
//
//	results, err := ecdsasig.NewClient().
//	    WithParser(&ecdsasig.CSVParser{}).
//	    WithWorkers(8).
//	    VerifyFile(ctx, "signatures.csv")
package ecdsasig
