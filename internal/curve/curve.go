// Package curve implements affine secp256k1 arithmetic on math/big.
//
// It is the portable reference used by the pure signing backend and by tests
// that cross-check the library backends. Nothing here is constant time.
package curve

import (
	"errors"
	"math/big"
)

var (
	// P is the prime of the underlying field.
	P, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)

	// N is the order of the group generated by G.
	N, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

	// HalfN is N/2, the largest s value of a low-S signature.
	HalfN = new(big.Int).Rsh(N, 1)

	// B is the constant of the curve equation y² = x³ + 7.
	B = big.NewInt(7)

	gx, _ = new(big.Int).SetString("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798", 16)
	gy, _ = new(big.Int).SetString("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8", 16)

	// sqrtExp is (P+1)/4. P ≡ 3 mod 4, so α^sqrtExp is a root of α when one exists.
	sqrtExp = new(big.Int).Rsh(new(big.Int).Add(P, big.NewInt(1)), 2)
)

var (
	// ErrNotOnCurve is returned when coordinates do not satisfy the curve equation.
	ErrNotOnCurve = errors.New("point is not on the secp256k1 curve")

	// ErrInvalidEncoding is returned by Decompress for malformed input.
	ErrInvalidEncoding = errors.New("invalid compressed point encoding")
)

// Point is an affine curve point. The identity has nil coordinates.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Infinity returns the point at infinity.
func Infinity() *Point {
	return &Point{}
}

// Generator returns a copy of the base point G.
func Generator() *Point {
	return &Point{X: new(big.Int).Set(gx), Y: new(big.Int).Set(gy)}
}

// NewPoint builds a point from coordinates, validating the curve equation.
func NewPoint(x, y *big.Int) (*Point, error) {
	if !IsOnCurve(x, y) {
		return nil, ErrNotOnCurve
	}
	return &Point{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}, nil
}

// IsInfinity reports whether p is the identity.
func (p *Point) IsInfinity() bool {
	return p == nil || p.X == nil || p.Y == nil
}

// Equal reports whether p and q are the same point.
func (p *Point) Equal(q *Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// IsOnCurve reports whether (x, y) satisfies y² = x³ + 7 with both
// coordinates reduced into the field.
func IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	if x.Sign() < 0 || x.Cmp(P) >= 0 || y.Sign() < 0 || y.Cmp(P) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, P)
	return lhs.Cmp(CurveRHS(x)) == 0
}

// CurveRHS returns x³ + 7 mod P.
func CurveRHS(x *big.Int) *big.Int {
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, B)
	return rhs.Mod(rhs, P)
}

// SqrtModP returns a square root of a mod P, and false when a is not a
// quadratic residue.
func SqrtModP(a *big.Int) (*big.Int, bool) {
	a = new(big.Int).Mod(a, P)
	root := new(big.Int).Exp(a, sqrtExp, P)
	check := new(big.Int).Mul(root, root)
	check.Mod(check, P)
	if check.Cmp(a) != 0 {
		return nil, false
	}
	return root, true
}

// Neg returns -p.
func Neg(p *Point) *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	y := new(big.Int).Sub(P, p.Y)
	y.Mod(y, P)
	return &Point{X: new(big.Int).Set(p.X), Y: y}
}

// Add returns p + q.
func Add(p, q *Point) *Point {
	if p.IsInfinity() {
		return copyPoint(q)
	}
	if q.IsInfinity() {
		return copyPoint(p)
	}
	if p.X.Cmp(q.X) == 0 {
		if p.Y.Cmp(q.Y) == 0 {
			return Double(p)
		}
		// q == -p
		return Infinity()
	}

	// λ = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(q.Y, p.Y)
	den := new(big.Int).Sub(q.X, p.X)
	den.Mod(den, P)
	lambda := num.Mul(num, den.ModInverse(den, P))
	lambda.Mod(lambda, P)

	return chord(lambda, p, q.X)
}

// Double returns 2p.
func Double(p *Point) *Point {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return Infinity()
	}

	// λ = 3x² / 2y, the curve has a = 0
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Lsh(p.Y, 1)
	den.Mod(den, P)
	lambda := num.Mul(num, den.ModInverse(den, P))
	lambda.Mod(lambda, P)

	return chord(lambda, p, p.X)
}

// chord finishes an addition given the slope through p and a second point
// with x coordinate x2.
func chord(lambda *big.Int, p *Point, x2 *big.Int) *Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.X)
	x3.Sub(x3, x2)
	x3.Mod(x3, P)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.Y)
	y3.Mod(y3, P)

	return &Point{X: x3, Y: y3}
}

// ScalarMult returns k·p, with k reduced mod N.
func ScalarMult(k *big.Int, p *Point) *Point {
	k = new(big.Int).Mod(k, N)
	result := Infinity()
	if p.IsInfinity() {
		return result
	}
	for i := k.BitLen() - 1; i >= 0; i-- {
		result = Double(result)
		if k.Bit(i) == 1 {
			result = Add(result, p)
		}
	}
	return result
}

// ScalarBaseMult returns k·G.
func ScalarBaseMult(k *big.Int) *Point {
	return ScalarMult(k, Generator())
}

// Compress serializes a non-identity point as 0x02|0x03 ‖ x.
func (p *Point) Compress() [33]byte {
	var out [33]byte
	out[0] = 0x02
	if p.Y.Bit(0) == 1 {
		out[0] = 0x03
	}
	p.X.FillBytes(out[1:])
	return out
}

// Decompress parses a 33-byte compressed point.
func Decompress(b []byte) (*Point, error) {
	if len(b) != 33 || (b[0] != 0x02 && b[0] != 0x03) {
		return nil, ErrInvalidEncoding
	}
	x := new(big.Int).SetBytes(b[1:])
	if x.Cmp(P) >= 0 {
		return nil, ErrInvalidEncoding
	}
	y, ok := SqrtModP(CurveRHS(x))
	if !ok {
		return nil, ErrNotOnCurve
	}
	if y.Bit(0) != uint(b[0]&1) {
		y.Sub(P, y)
	}
	return NewPoint(x, y)
}

func copyPoint(p *Point) *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	return &Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}
