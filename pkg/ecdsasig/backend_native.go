package ecdsasig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// nativeBackend signs with the dedicated secp256k1 library. The plain RFC
// 6979 draw and recovery go through libsecp256k1 when cgo is available (see
// native_cgo.go), everything else through decred's secp256k1.
type nativeBackend struct{}

func newNativeBackend() (Backend, error) {
	return nativeBackend{}, nil
}

func (nativeBackend) Kind() BackendKind { return BackendSecp256k1 }

func (b nativeBackend) SignRecoverable(digest []byte, key *PrivateKey, extra []byte) (
	RawSignature, int, error) {
	if len(digest) != DigestSize {
		return RawSignature{}, NoRecoveryID, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(digest))
	}
	if extra == nil {
		return nativeSignDeterministic(digest, key)
	}
	return signWithExtra(digest, key, extra)
}

func (nativeBackend) RecoverPoint(digest []byte, sig RawSignature, i int) (CompressedPublicKey, error) {
	x, err := recoveryX(sig, i)
	if err != nil {
		return CompressedPublicKey{}, err
	}

	var fx, y secp256k1.FieldVal
	fx.SetByteSlice(x.Bytes())
	if !secp256k1.DecompressY(&fx, i&1 == 1, &y) {
		return CompressedPublicKey{}, makeError(ErrNoSquareRoot, fmt.Sprintf(
			"no curve point has x coordinate %x", x))
	}

	pub, err := nativeRecover(digest, sig, i)
	if err != nil {
		return CompressedPublicKey{}, makeError(ErrRecoveryFailed, fmt.Sprintf(
			"secp256k1 library rejected recovery: %v", err))
	}
	return pub, nil
}

func (nativeBackend) Verify(digest []byte, sig RawSignature, pub CompressedPublicKey) bool {
	return decredVerify(digest, sig, pub)
}

func (nativeBackend) PublicKey(key *PrivateKey) (CompressedPublicKey, error) {
	priv := key.decred()
	defer priv.Zero()

	var pub CompressedPublicKey
	copy(pub[:], priv.PubKey().SerializeCompressed())
	return pub, nil
}

// signWithExtra runs decred's signing steps with extra data mixed into the
// RFC 6979 nonce. The recovery code is the parity of R.y plus 2 when R.x
// overflowed the group order, flipped when s is negated to its low form.
func signWithExtra(digest []byte, key *PrivateKey, extra []byte) (RawSignature, int, error) {
	priv := key.decred()
	defer priv.Zero()

	var e secp256k1.ModNScalar
	e.SetByteSlice(digest)

	for iteration := uint32(0); ; iteration++ {
		k := secp256k1.NonceRFC6979(key.d[:], digest, extra, nil, iteration)

		var kG secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		var r secp256k1.ModNScalar
		var xBytes [32]byte
		kG.X.PutBytes(&xBytes)
		overflow := r.SetBytes(&xBytes)
		if r.IsZero() {
			k.Zero()
			continue
		}
		recoveryCode := int(overflow<<1) | int(kG.Y.IsOddBit())

		kinv := new(secp256k1.ModNScalar).InverseValNonConst(k)
		k.Zero()
		s := new(secp256k1.ModNScalar).Mul2(&priv.Key, &r).Add(&e).Mul(kinv)
		if s.IsZero() {
			continue
		}
		if s.IsOverHalfOrder() {
			s.Negate()
			recoveryCode ^= 1
		}

		var sig RawSignature
		r.PutBytesUnchecked(sig[:32])
		s.PutBytesUnchecked(sig[32:])
		return sig, recoveryCode, nil
	}
}

// decredSignCompact draws the plain RFC 6979 signature with decred.
func decredSignCompact(digest []byte, key *PrivateKey) (RawSignature, int, error) {
	priv := key.decred()
	defer priv.Zero()

	compact := ecdsa.SignCompact(priv, digest, true)
	var sig RawSignature
	copy(sig[:], compact[1:])
	return sig, int(compact[0]) - headerOffset, nil
}

// decredRecover recovers with decred's RecoverCompact.
func decredRecover(digest []byte, sig RawSignature, i int) (CompressedPublicKey, error) {
	compact, err := NewCompactSignature(i, sig)
	if err != nil {
		return CompressedPublicKey{}, err
	}

	key, _, err := ecdsa.RecoverCompact(compact[:], digest)
	if err != nil {
		return CompressedPublicKey{}, err
	}

	var pub CompressedPublicKey
	copy(pub[:], key.SerializeCompressed())
	return pub, nil
}

func decredVerify(digest []byte, sig RawSignature, pub CompressedPublicKey) bool {
	key, err := secp256k1.ParsePubKey(pub[:])
	if err != nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest, key)
}
