package ecdsasig

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// PrivateKeySize is the length of a serialized private scalar.
const PrivateKeySize = 32

// CompressedPublicKeySize is the length of a compressed public key.
const CompressedPublicKeySize = 33

// DefaultPrefix is the address prefix used when displaying public keys.
const DefaultPrefix = "STM"

// PrivateKey is a secp256k1 secret scalar in [1, n-1].
type PrivateKey struct {
	d [PrivateKeySize]byte
}

// NewPrivateKey validates and wraps a 32-byte big-endian scalar.
func NewPrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, makeError(ErrPrivateKeyInvalid, fmt.Sprintf(
			"malformed private key: invalid length: %d", len(b)))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, makeError(ErrPrivateKeyInvalid,
			"invalid private key: scalar is not below the group order")
	}
	if scalar.IsZero() {
		return nil, makeError(ErrPrivateKeyInvalid, "invalid private key: scalar is zero")
	}

	key := &PrivateKey{}
	copy(key.d[:], b)
	return key, nil
}

// PrivateKeyFromHex parses a hex encoded private key, with or without a 0x prefix.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hexDecode(s)
	if err != nil {
		return nil, makeError(ErrPrivateKeyInvalid, fmt.Sprintf(
			"malformed private key: %v", err))
	}
	return NewPrivateKey(b)
}

// Bytes returns a copy of the scalar.
func (k *PrivateKey) Bytes() [PrivateKeySize]byte {
	return k.d
}

// String never prints the scalar.
func (k *PrivateKey) String() string {
	return "PrivateKey(redacted)"
}

// decred returns the key as a decred private key. The caller must zero it.
func (k *PrivateKey) decred() *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(k.d[:])
}

// Format bytes of a compressed point, by parity of y.
const (
	pubKeyFormatCompressedEven = 0x02
	pubKeyFormatCompressedOdd  = 0x03
)

// CompressedPublicKey is the 33-byte SEC1 compressed encoding of a point.
type CompressedPublicKey [CompressedPublicKeySize]byte

// ParseCompressedPublicKey validates a 33-byte compressed point.
func ParseCompressedPublicKey(b []byte) (CompressedPublicKey, error) {
	var pub CompressedPublicKey
	if len(b) != CompressedPublicKeySize {
		return pub, makeError(ErrPublicKeyInvalid, fmt.Sprintf(
			"malformed public key: invalid length: %d", len(b)))
	}
	if b[0] != pubKeyFormatCompressedEven && b[0] != pubKeyFormatCompressedOdd {
		return pub, makeError(ErrPublicKeyInvalid, fmt.Sprintf(
			"malformed public key: invalid format byte 0x%02x", b[0]))
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return pub, makeError(ErrPublicKeyInvalid, fmt.Sprintf(
			"invalid public key: %v", err))
	}
	copy(pub[:], b)
	return pub, nil
}

// ParseCompressedPublicKeyHex parses a hex encoded compressed point.
func ParseCompressedPublicKeyHex(s string) (CompressedPublicKey, error) {
	b, err := hexDecode(s)
	if err != nil {
		return CompressedPublicKey{}, makeError(ErrPublicKeyInvalid, fmt.Sprintf(
			"malformed public key: %v", err))
	}
	return ParseCompressedPublicKey(b)
}

// Hex returns the lowercase hex encoding of the key.
func (p CompressedPublicKey) Hex() string {
	return hex.EncodeToString(p[:])
}

// String implements fmt.Stringer.
func (p CompressedPublicKey) String() string {
	return p.Hex()
}

// PublicKey is a compressed key tagged with a display prefix.
type PublicKey struct {
	Key    CompressedPublicKey
	Prefix string
}

// NewPublicKey tags key with prefix, falling back to DefaultPrefix.
func NewPublicKey(key CompressedPublicKey, prefix string) PublicKey {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return PublicKey{Key: key, Prefix: prefix}
}

// String returns prefix ‖ base58(key ‖ ripemd160(key)[:4]).
func (p PublicKey) String() string {
	h := ripemd160.New()
	h.Write(p.Key[:])
	checksum := h.Sum(nil)

	buf := make([]byte, 0, CompressedPublicKeySize+4)
	buf = append(buf, p.Key[:]...)
	buf = append(buf, checksum[:4]...)
	return p.Prefix + base58.Encode(buf)
}

// ParsePublicKeyString parses the display form produced by PublicKey.String.
func ParsePublicKeyString(s, prefix string) (PublicKey, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasPrefix(s, prefix) {
		return PublicKey{}, makeError(ErrPublicKeyInvalid, fmt.Sprintf(
			"public key %q does not start with prefix %q", s, prefix))
	}

	raw := base58.Decode(strings.TrimPrefix(s, prefix))
	if len(raw) != CompressedPublicKeySize+4 {
		return PublicKey{}, makeError(ErrPublicKeyInvalid, fmt.Sprintf(
			"malformed public key: decoded length %d", len(raw)))
	}

	key, err := ParseCompressedPublicKey(raw[:CompressedPublicKeySize])
	if err != nil {
		return PublicKey{}, err
	}

	pub := NewPublicKey(key, prefix)
	if pub.String() != s {
		return PublicKey{}, makeError(ErrPublicKeyInvalid, "public key checksum mismatch")
	}
	return pub, nil
}

func hexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}
