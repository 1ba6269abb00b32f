package curve

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func Test_ScalarBaseMult_knownMultiples(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		k          *big.Int
		compressed string
	}{
		"one": {
			k:          big.NewInt(1),
			compressed: "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		},
		"two": {
			k:          big.NewInt(2),
			compressed: "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
		},
		"three": {
			k:          big.NewInt(3),
			compressed: "02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",
		},
		"order_minus_one": {
			k:          new(big.Int).Sub(N, big.NewInt(1)),
			compressed: "0379be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			point := ScalarBaseMult(testCase.k)
			require.False(t, point.IsInfinity())
			assert.True(t, IsOnCurve(point.X, point.Y))

			compressed := point.Compress()
			assert.Equal(t, testCase.compressed, hex.EncodeToString(compressed[:]))
		})
	}
}

func Test_ScalarBaseMult_order(t *testing.T) {
	t.Parallel()

	assert.True(t, ScalarBaseMult(N).IsInfinity())
	assert.True(t, ScalarBaseMult(big.NewInt(0)).IsInfinity())
	assert.True(t, ScalarBaseMult(new(big.Int).Add(N, big.NewInt(1))).Equal(Generator()))
}

func Test_Add(t *testing.T) {
	t.Parallel()

	g := Generator()
	two := ScalarBaseMult(big.NewInt(2))
	three := ScalarBaseMult(big.NewInt(3))

	assert.True(t, Add(g, g).Equal(two))
	assert.True(t, Add(g, two).Equal(three))
	assert.True(t, Add(two, g).Equal(three))
	assert.True(t, Add(g, Neg(g)).IsInfinity())
	assert.True(t, Add(Infinity(), g).Equal(g))
	assert.True(t, Add(g, Infinity()).Equal(g))
	assert.True(t, Neg(Infinity()).IsInfinity())
}

func Test_NewPoint(t *testing.T) {
	t.Parallel()

	g := Generator()
	_, err := NewPoint(g.X, g.Y)
	require.NoError(t, err)

	_, err = NewPoint(g.X, new(big.Int).Add(g.Y, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrNotOnCurve)

	_, err = NewPoint(new(big.Int).Add(g.X, P), g.Y)
	assert.ErrorIs(t, err, ErrNotOnCurve)
}

func Test_SqrtModP(t *testing.T) {
	t.Parallel()

	g := Generator()
	root, ok := SqrtModP(CurveRHS(g.X))
	require.True(t, ok)
	if root.Cmp(g.Y) != 0 {
		assert.Equal(t, 0, new(big.Int).Sub(P, root).Cmp(g.Y))
	}

	// x = 5 gives 5³ + 7 = 132, which is not a square mod P.
	_, ok = SqrtModP(CurveRHS(big.NewInt(5)))
	assert.False(t, ok)
}

func Test_Decompress(t *testing.T) {
	t.Parallel()

	for _, k := range []int64{1, 2, 3, 7, 1 << 40} {
		point := ScalarBaseMult(big.NewInt(k))
		compressed := point.Compress()

		decoded, err := Decompress(compressed[:])
		require.NoError(t, err)
		assert.True(t, decoded.Equal(point), "k=%d", k)
	}

	_, err := Decompress(mustHex(t, "04"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	bad := mustHex(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	bad[0] = 0x05
	_, err = Decompress(bad)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
