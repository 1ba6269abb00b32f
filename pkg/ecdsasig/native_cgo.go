//go:build cgo

package ecdsasig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	gethsecp "github.com/ethereum/go-ethereum/crypto/secp256k1"
)

// nativeSignDeterministic signs with libsecp256k1, which returns r ‖ s ‖ v.
func nativeSignDeterministic(digest []byte, key *PrivateKey) (RawSignature, int, error) {
	out, err := gethsecp.Sign(digest, key.d[:])
	if err != nil {
		return RawSignature{}, NoRecoveryID, err
	}
	defer zeroBytes(out)

	var sig RawSignature
	copy(sig[:], out[:RawSignatureSize])
	return sig, int(out[RawSignatureSize]), nil
}

// nativeRecover recovers with libsecp256k1 and compresses the result.
func nativeRecover(digest []byte, sig RawSignature, i int) (CompressedPublicKey, error) {
	in := make([]byte, RawSignatureSize+1)
	copy(in, sig[:])
	in[RawSignatureSize] = byte(i)

	uncompressed, err := gethsecp.RecoverPubkey(digest, in)
	if err != nil {
		return CompressedPublicKey{}, err
	}
	key, err := secp256k1.ParsePubKey(uncompressed)
	if err != nil {
		return CompressedPublicKey{}, err
	}

	var pub CompressedPublicKey
	copy(pub[:], key.SerializeCompressed())
	return pub, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
