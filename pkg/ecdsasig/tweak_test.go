package ecdsasig

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/ecdsa-recoverable/internal/curve"
)

func tweakFromInt(v *big.Int) (tweak [32]byte) {
	v.FillBytes(tweak[:])
	return tweak
}

func TestTweakAddPublicKey(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		tweak int64
		want  string
	}{
		"zero":  {tweak: 0, want: "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"},
		"one":   {tweak: 1, want: "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"},
		"two":   {tweak: 2, want: "02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9"},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := TweakAddPublicKey(generatorCompressed, tweakFromInt(big.NewInt(testCase.tweak)))
			require.NoError(t, err)
			assert.Equal(t, testCase.want, out.Hex())
		})
	}
}

func TestTweakAddPublicKey_matchesPrivateTweak(t *testing.T) {
	t.Parallel()

	info := loadTestKeyInfo(t)
	_, pub := loadTestKey(t)

	d, ok := new(big.Int).SetString(info.PrivateKey, 16)
	require.True(t, ok)
	tweak := SHA256([]byte("tweak"))

	sum := new(big.Int).Add(d, new(big.Int).SetBytes(tweak[:]))
	sum.Mod(sum, curve.N)
	want := curve.ScalarBaseMult(sum).Compress()

	out, err := TweakAddPublicKey(pub, tweak)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), out.Hex())
}

func TestTweakAddPublicKey_errors(t *testing.T) {
	t.Parallel()

	_, err := TweakAddPublicKey(generatorCompressed, tweakFromInt(curve.N))
	assert.ErrorIs(t, err, ErrTweakInvalid)

	// (n-1)·G + G is the point at infinity.
	minusG := CompressedPublicKey(curve.ScalarBaseMult(new(big.Int).Sub(curve.N, big.NewInt(1))).Compress())
	_, err = TweakAddPublicKey(minusG, tweakFromInt(big.NewInt(1)))
	assert.ErrorIs(t, err, ErrTweakInvalid)

	var invalid CompressedPublicKey
	invalid[0] = 0x02
	invalid[32] = 0x05
	_, err = TweakAddPublicKey(invalid, tweakFromInt(big.NewInt(1)))
	assert.ErrorIs(t, err, ErrPublicKeyInvalid)
}
