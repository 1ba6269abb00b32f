package ecdsasig

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/ecdsa-recoverable/internal/curve"
)

// RecoverPublicKey recovers the public key that produced sig over digest
// for recovery parameter i in [0, 3].
func RecoverPublicKey(backend Backend, digest [DigestSize]byte, sig RawSignature, i int) (CompressedPublicKey, error) {
	if i < 0 || i > maxRecoveryParam {
		return CompressedPublicKey{}, makeError(ErrSigInvalidRecoveryParam, fmt.Sprintf(
			"invalid recovery parameter %d", i))
	}
	return backend.RecoverPoint(digest[:], sig, i)
}

// curveFailures are the per-parameter recovery failures DeriveRecoveryParam
// moves past.
var curveFailures = []ErrorKind{
	ErrFieldOverflow,
	ErrNoSquareRoot,
	ErrPointNotOnCurve,
	ErrPointAtInfinity,
	ErrRecoveryFailed,
}

func isCurveFailure(err error) bool {
	for _, kind := range curveFailures {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// DeriveRecoveryParam finds the recovery parameter whose recovered key is
// claimed. Parameters that fail to recover any point are skipped, a
// signature with r or s outside [1, n-1] fails with ErrSigScalarOutOfRange.
func DeriveRecoveryParam(backend Backend, digest [DigestSize]byte, sig RawSignature,
	claimed CompressedPublicKey) (int, error) {
	if err := checkScalars(sig); err != nil {
		return 0, err
	}

	for i := 0; i <= maxRecoveryParam; i++ {
		recovered, err := backend.RecoverPoint(digest[:], sig, i)
		if isCurveFailure(err) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("recovering with parameter %d: %w", i, err)
		}
		if bytes.Equal(recovered[:], claimed[:]) {
			return i, nil
		}
	}
	return 0, makeError(ErrRecoveryExhausted, fmt.Sprintf(
		"no recovery parameter yields public key %s", claimed))
}

// recoveryX validates r, s and i and returns the candidate x coordinate
// r + ⌊i/2⌋·n of the nonce point.
func recoveryX(sig RawSignature, i int) (*big.Int, error) {
	if i < 0 || i > maxRecoveryParam {
		return nil, makeError(ErrSigInvalidRecoveryParam, fmt.Sprintf(
			"invalid recovery parameter %d", i))
	}

	if err := checkScalars(sig); err != nil {
		return nil, err
	}

	r := sig.R()
	x := r
	if i>>1 == 1 {
		x = new(big.Int).Add(r, curve.N)
	}
	if x.Cmp(curve.P) >= 0 {
		return nil, makeError(ErrFieldOverflow, fmt.Sprintf(
			"r + n exceeds the field prime for recovery parameter %d", i))
	}
	return x, nil
}

// checkScalars requires r and s in [1, n-1].
func checkScalars(sig RawSignature) error {
	r, s := sig.R(), sig.S()
	if r.Sign() == 0 || r.Cmp(curve.N) >= 0 {
		return makeError(ErrSigScalarOutOfRange, "signature r is zero or not below the group order")
	}
	if s.Sign() == 0 || s.Cmp(curve.N) >= 0 {
		return makeError(ErrSigScalarOutOfRange, "signature s is zero or not below the group order")
	}
	return nil
}
