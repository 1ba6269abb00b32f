package ecdsasig

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	// RawSignatureSize is the length of r ‖ s.
	RawSignatureSize = 64

	// CompactSignatureSize is the length of header ‖ r ‖ s.
	CompactSignatureSize = 65

	// headerOffset is added to the recovery parameter to form the header
	// byte: 27 plus 4 to flag a compressed public key.
	headerOffset = 27 + 4

	// NoRecoveryID is returned by backends that cannot embed the recovery
	// parameter in their signing output.
	NoRecoveryID = -1

	// maxRecoveryParam is the largest valid recovery parameter.
	maxRecoveryParam = 3
)

// RawSignature holds the big-endian r and s scalars.
type RawSignature [RawSignatureSize]byte

// R returns the r scalar.
func (s RawSignature) R() *big.Int {
	return new(big.Int).SetBytes(s[:32])
}

// S returns the s scalar.
func (s RawSignature) S() *big.Int {
	return new(big.Int).SetBytes(s[32:])
}

// newRawSignature serializes r and s, which must both be below 2²⁵⁶.
func newRawSignature(r, s *big.Int) RawSignature {
	var sig RawSignature
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])
	return sig
}

// IsCanonical reports whether r and s both DER-encode to exactly 32 bytes:
// the leading byte of each has its high bit clear, and a zero leading byte is
// only allowed when the byte after it has its high bit set.
func IsCanonical(sig RawSignature) bool {
	return isCanonicalScalar(sig[0], sig[1]) && isCanonicalScalar(sig[32], sig[33])
}

func isCanonicalScalar(b0, b1 byte) bool {
	if b0&0x80 != 0 {
		return false
	}
	if b0 == 0 && b1&0x80 == 0 {
		return false
	}
	return true
}

// CompactSignature is header ‖ r ‖ s where header = i + 31.
type CompactSignature [CompactSignatureSize]byte

// NewCompactSignature builds a compact signature from a recovery parameter
// in [0, 3] and a raw signature.
func NewCompactSignature(recoveryParam int, sig RawSignature) (CompactSignature, error) {
	var out CompactSignature
	if recoveryParam < 0 || recoveryParam > maxRecoveryParam {
		return out, makeError(ErrSigInvalidRecoveryParam, fmt.Sprintf(
			"invalid recovery parameter %d", recoveryParam))
	}
	out[0] = byte(recoveryParam + headerOffset)
	copy(out[1:], sig[:])
	return out, nil
}

// ParseCompactSignature checks the length of b and copies it. The header is
// not interpreted.
func ParseCompactSignature(b []byte) (CompactSignature, error) {
	var sig CompactSignature
	if len(b) != CompactSignatureSize {
		return sig, makeError(ErrSigInvalidLen, fmt.Sprintf(
			"malformed signature: invalid length: %d, expected %d", len(b), CompactSignatureSize))
	}
	copy(sig[:], b)
	return sig, nil
}

// ParseCompactSignatureHex parses a hex encoded compact signature.
func ParseCompactSignatureHex(s string) (CompactSignature, error) {
	b, err := hexDecode(s)
	if err != nil {
		return CompactSignature{}, makeError(ErrSigInvalidLen, fmt.Sprintf(
			"malformed signature: %v", err))
	}
	return ParseCompactSignature(b)
}

// Header returns the first byte.
func (c CompactSignature) Header() byte {
	return c[0]
}

// RecoveryParam returns header - 31. The result is not range checked.
func (c CompactSignature) RecoveryParam() int {
	return int(c[0]) - headerOffset
}

// Raw returns r ‖ s.
func (c CompactSignature) Raw() RawSignature {
	var raw RawSignature
	copy(raw[:], c[1:])
	return raw
}

// Bytes returns the signature as a slice.
func (c CompactSignature) Bytes() []byte {
	out := make([]byte, CompactSignatureSize)
	copy(out, c[:])
	return out
}

// Hex returns the lowercase hex encoding of the signature.
func (c CompactSignature) Hex() string {
	return hex.EncodeToString(c[:])
}

// String implements fmt.Stringer.
func (c CompactSignature) String() string {
	return c.Hex()
}
