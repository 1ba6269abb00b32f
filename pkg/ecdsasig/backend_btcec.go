package ecdsasig

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// errNonCanonicalDraw is returned by a backend that rejects a draw whose r
// or s does not DER-encode to exactly 32 bytes. The signer retries.
var errNonCanonicalDraw = errors.New("non canonical signature draw")

// btcecBackend works on btcec's Jacobian arithmetic. It cannot report the
// recovery parameter of its signatures.
type btcecBackend struct{}

func newBtcecBackend() (Backend, error) {
	return btcecBackend{}, nil
}

func (btcecBackend) Kind() BackendKind { return BackendBtcec }

func (btcecBackend) SignRecoverable(digest []byte, key *PrivateKey, extra []byte) (RawSignature, int, error) {
	if len(digest) != DigestSize {
		return RawSignature{}, NoRecoveryID, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(digest))
	}

	priv, _ := btcec.PrivKeyFromBytes(key.d[:])
	defer priv.Zero()

	var e btcec.ModNScalar
	e.SetByteSlice(digest)

	for iteration := uint32(0); ; iteration++ {
		k := secp256k1.NonceRFC6979(key.d[:], digest, extra, nil, iteration)

		var kG btcec.JacobianPoint
		btcec.ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		var xBytes [32]byte
		kG.X.PutBytes(&xBytes)
		var r btcec.ModNScalar
		r.SetBytes(&xBytes)
		if r.IsZero() {
			k.Zero()
			continue
		}

		kinv := new(btcec.ModNScalar).InverseValNonConst(k)
		k.Zero()
		s := new(btcec.ModNScalar).Mul2(&priv.Key, &r).Add(&e).Mul(kinv)
		if s.IsZero() {
			continue
		}
		if s.IsOverHalfOrder() {
			s.Negate()
		}

		// 0x30 <len> 0x02 <lenR> <R> 0x02 <lenS> <S>
		der := ecdsa.NewSignature(&r, s).Serialize()
		lenR := int(der[3])
		lenS := int(der[5+lenR])
		if lenR != 32 || lenS != 32 {
			return RawSignature{}, NoRecoveryID, errNonCanonicalDraw
		}

		var sig RawSignature
		copy(sig[:32], der[4:4+lenR])
		copy(sig[32:], der[6+lenR:6+lenR+lenS])
		return sig, NoRecoveryID, nil
	}
}

// RecoverPoint computes Q = r⁻¹(sR - eG) where R is the curve point with
// x = r + ⌊i/2⌋·n and y parity i&1.
func (btcecBackend) RecoverPoint(digest []byte, sig RawSignature, i int) (CompressedPublicKey, error) {
	x, err := recoveryX(sig, i)
	if err != nil {
		return CompressedPublicKey{}, err
	}

	var fx, y btcec.FieldVal
	fx.SetByteSlice(x.Bytes())
	if !btcec.DecompressY(&fx, i&1 == 1, &y) {
		return CompressedPublicKey{}, makeError(ErrNoSquareRoot, fmt.Sprintf(
			"no curve point has x coordinate %x", x))
	}
	if !btcec.NewPublicKey(&fx, &y).IsOnCurve() {
		return CompressedPublicKey{}, makeError(ErrPointNotOnCurve, fmt.Sprintf(
			"point with x coordinate %x is not on the curve", x))
	}

	var R btcec.JacobianPoint
	R.X.Set(&fx)
	R.Y.Set(&y)
	R.Z.SetInt(1)

	var r, s, e btcec.ModNScalar
	r.SetByteSlice(sig[:32])
	s.SetByteSlice(sig[32:])
	e.SetByteSlice(digest)

	w := new(btcec.ModNScalar).InverseValNonConst(&r)
	u1 := new(btcec.ModNScalar).Mul2(&e, w).Negate()
	u2 := new(btcec.ModNScalar).Mul2(&s, w)

	var u1G, u2R, Q btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(u1, &u1G)
	btcec.ScalarMultNonConst(u2, &R, &u2R)
	btcec.AddNonConst(&u1G, &u2R, &Q)

	Q.X.Normalize()
	Q.Y.Normalize()
	Q.Z.Normalize()
	if (Q.X.IsZero() && Q.Y.IsZero()) || Q.Z.IsZero() {
		return CompressedPublicKey{}, makeError(ErrPointAtInfinity, "recovered public key is the point at infinity")
	}
	Q.ToAffine()

	var pub CompressedPublicKey
	copy(pub[:], btcec.NewPublicKey(&Q.X, &Q.Y).SerializeCompressed())
	return pub, nil
}

func (btcecBackend) Verify(digest []byte, sig RawSignature, pub CompressedPublicKey) bool {
	key, err := btcec.ParsePubKey(pub[:])
	if err != nil {
		return false
	}

	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest, key)
}

func (btcecBackend) PublicKey(key *PrivateKey) (CompressedPublicKey, error) {
	priv, pubKey := btcec.PrivKeyFromBytes(key.d[:])
	defer priv.Zero()

	var pub CompressedPublicKey
	copy(pub[:], pubKey.SerializeCompressed())
	return pub, nil
}
