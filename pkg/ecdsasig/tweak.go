package ecdsasig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// TweakAddPublicKey returns P + tweak·G.
func TweakAddPublicKey(pub CompressedPublicKey, tweak [32]byte) (CompressedPublicKey, error) {
	key, err := secp256k1.ParsePubKey(pub[:])
	if err != nil {
		return CompressedPublicKey{}, makeError(ErrPublicKeyInvalid, fmt.Sprintf(
			"invalid public key: %v", err))
	}

	var t secp256k1.ModNScalar
	if overflow := t.SetBytes(&tweak); overflow != 0 {
		return CompressedPublicKey{}, makeError(ErrTweakInvalid, "tweak is not below the group order")
	}

	var P, tG, sum secp256k1.JacobianPoint
	key.AsJacobian(&P)
	secp256k1.ScalarBaseMultNonConst(&t, &tG)
	secp256k1.AddNonConst(&P, &tG, &sum)

	sum.X.Normalize()
	sum.Y.Normalize()
	sum.Z.Normalize()
	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return CompressedPublicKey{}, makeError(ErrTweakInvalid, "tweaked public key is the point at infinity")
	}
	sum.ToAffine()

	var out CompressedPublicKey
	copy(out[:], secp256k1.NewPublicKey(&sum.X, &sum.Y).SerializeCompressed())
	return out, nil
}
