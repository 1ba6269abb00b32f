package ecdsasig

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the length of a message digest.
const DigestSize = 32

// HashFunc maps a message to the 32-byte digest that gets signed.
type HashFunc func(message []byte) [DigestSize]byte

// Hash names accepted by HashByName.
const (
	HashSHA256     = "sha256"
	HashSHA3_256   = "sha3-256"
	HashKeccak256  = "keccak256"
	HashBlake2b256 = "blake2b-256"
	HashBlake3     = "blake3"
)

var hashes = map[string]HashFunc{
	HashSHA256:     SHA256,
	HashSHA3_256:   sha3.Sum256,
	HashKeccak256:  Keccak256,
	HashBlake2b256: blake2b.Sum256,
	HashBlake3:     blake3.Sum256,
}

// SHA256 is the default message hash.
func SHA256(message []byte) [DigestSize]byte {
	return sha256.Sum256(message)
}

// Keccak256 is the legacy Keccak hash used by Ethereum.
func Keccak256(message []byte) (digest [DigestSize]byte) {
	h := sha3.NewLegacyKeccak256()
	h.Write(message)
	h.Sum(digest[:0])
	return digest
}

// HashByName returns the hash function registered under name.
func HashByName(name string) (HashFunc, error) {
	fn, ok := hashes[name]
	if !ok {
		return nil, makeError(ErrUnknownHash, fmt.Sprintf("unknown hash %q", name))
	}
	return fn, nil
}

// HashNames lists the accepted hash names in sorted order.
func HashNames() []string {
	names := make([]string, 0, len(hashes))
	for name := range hashes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
