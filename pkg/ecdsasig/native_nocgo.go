//go:build !cgo

package ecdsasig

func nativeSignDeterministic(digest []byte, key *PrivateKey) (RawSignature, int, error) {
	return decredSignCompact(digest, key)
}

func nativeRecover(digest []byte, sig RawSignature, i int) (CompressedPublicKey, error) {
	return decredRecover(digest, sig, i)
}
