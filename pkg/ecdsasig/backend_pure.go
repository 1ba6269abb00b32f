package ecdsasig

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-recoverable/internal/curve"
)

// pureBackend is affine math/big arithmetic with no library curve code.
// Only the RFC 6979 nonce comes from decred.
type pureBackend struct{}

func newPureBackend() (Backend, error) {
	return pureBackend{}, nil
}

func (pureBackend) Kind() BackendKind { return BackendPure }

func (pureBackend) SignRecoverable(digest []byte, key *PrivateKey, extra []byte) (RawSignature, int, error) {
	if len(digest) != DigestSize {
		return RawSignature{}, NoRecoveryID, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(digest))
	}

	d := new(big.Int).SetBytes(key.d[:])
	e := new(big.Int).SetBytes(digest)
	e.Mod(e, curve.N)

	for iteration := uint32(0); ; iteration++ {
		nonce := secp256k1.NonceRFC6979(key.d[:], digest, extra, nil, iteration)
		kBytes := nonce.Bytes()
		nonce.Zero()
		k := new(big.Int).SetBytes(kBytes[:])

		R := curve.ScalarBaseMult(k)
		if R.IsInfinity() {
			continue
		}
		r := new(big.Int).Mod(R.X, curve.N)
		if r.Sign() == 0 {
			continue
		}

		// s = k⁻¹(e + r·d)
		s := new(big.Int).Mul(r, d)
		s.Add(s, e)
		s.Mul(s, new(big.Int).ModInverse(k, curve.N))
		s.Mod(s, curve.N)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(curve.HalfN) > 0 {
			s.Sub(curve.N, s)
		}
		return newRawSignature(r, s), NoRecoveryID, nil
	}
}

// RecoverPoint reconstructs R from x = r + ⌊i/2⌋·n and the parity of i, then
// returns Q = r⁻¹(sR - eG).
func (pureBackend) RecoverPoint(digest []byte, sig RawSignature, i int) (CompressedPublicKey, error) {
	x, err := recoveryX(sig, i)
	if err != nil {
		return CompressedPublicKey{}, err
	}

	beta, ok := curve.SqrtModP(curve.CurveRHS(x))
	if !ok {
		return CompressedPublicKey{}, makeError(ErrNoSquareRoot, fmt.Sprintf(
			"no curve point has x coordinate %x", x))
	}
	y := beta
	if beta.Bit(0) != uint(i&1) {
		y = new(big.Int).Sub(curve.P, beta)
	}

	R, err := curve.NewPoint(x, y)
	if err != nil {
		return CompressedPublicKey{}, makeError(ErrPointNotOnCurve, err.Error())
	}

	r, s := sig.R(), sig.S()
	e := new(big.Int).SetBytes(digest)
	e.Mod(e, curve.N)

	sR := curve.ScalarMult(s, R)
	eG := curve.ScalarBaseMult(e)
	Q := curve.ScalarMult(new(big.Int).ModInverse(r, curve.N), curve.Add(sR, curve.Neg(eG)))
	if Q.IsInfinity() {
		return CompressedPublicKey{}, makeError(ErrPointAtInfinity, "recovered public key is the point at infinity")
	}
	return CompressedPublicKey(Q.Compress()), nil
}

// Verify checks that the x coordinate of s⁻¹e·G + s⁻¹r·Q is r mod n.
func (pureBackend) Verify(digest []byte, sig RawSignature, pub CompressedPublicKey) bool {
	Q, err := curve.Decompress(pub[:])
	if err != nil {
		return false
	}

	r, s := sig.R(), sig.S()
	if r.Sign() == 0 || r.Cmp(curve.N) >= 0 || s.Sign() == 0 || s.Cmp(curve.N) >= 0 {
		return false
	}

	e := new(big.Int).SetBytes(digest)
	e.Mod(e, curve.N)

	w := new(big.Int).ModInverse(s, curve.N)
	u1 := new(big.Int).Mul(e, w)
	u2 := new(big.Int).Mul(r, w)

	X := curve.Add(curve.ScalarBaseMult(u1), curve.ScalarMult(u2, Q))
	if X.IsInfinity() {
		return false
	}
	v := new(big.Int).Mod(X.X, curve.N)
	return v.Cmp(r) == 0
}

func (pureBackend) PublicKey(key *PrivateKey) (CompressedPublicKey, error) {
	d := new(big.Int).SetBytes(key.d[:])
	if d.Sign() == 0 || d.Cmp(curve.N) >= 0 {
		return CompressedPublicKey{}, makeError(ErrPrivateKeyInvalid, "private key is not in [1, n-1]")
	}
	return CompressedPublicKey(curve.ScalarBaseMult(d).Compress()), nil
}
