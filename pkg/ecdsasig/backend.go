package ecdsasig

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/mahdiidarabi/ecdsa-recoverable/internal/log"
)

// BackendKind names a signing backend.
type BackendKind int

const (
	// BackendAuto picks the first backend passing its self test, in the
	// order BackendSecp256k1, BackendBtcec, BackendPure.
	BackendAuto BackendKind = iota
	// BackendSecp256k1 is the native secp256k1 library. It is libsecp256k1
	// when built with cgo and decred's pure Go port otherwise.
	BackendSecp256k1
	// BackendBtcec is the general purpose btcec elliptic curve library.
	BackendBtcec
	// BackendPure is the math/big fallback.
	BackendPure
)

var backendNames = map[BackendKind]string{
	BackendAuto:      "auto",
	BackendSecp256k1: "secp256k1",
	BackendBtcec:     "btcec",
	BackendPure:      "pure",
}

// backendPreference is the probing order of BackendAuto.
var backendPreference = []BackendKind{BackendSecp256k1, BackendBtcec, BackendPure}

func (k BackendKind) String() string {
	if name, ok := backendNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BackendKind(%d)", int(k))
}

// ParseBackendKind maps a backend name to its kind.
func ParseBackendKind(s string) (BackendKind, error) {
	for kind, name := range backendNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, makeError(ErrUnknownBackend, fmt.Sprintf("unknown backend %q", s))
}

// Backend is the capability set every signing backend provides.
type Backend interface {
	// Kind identifies the backend.
	Kind() BackendKind

	// SignRecoverable draws one low-S signature of digest with the RFC 6979
	// nonce for key, digest and extra. It returns the recovery parameter, or
	// NoRecoveryID when the backend cannot compute it.
	SignRecoverable(digest []byte, key *PrivateKey, extra []byte) (RawSignature, int, error)

	// RecoverPoint recovers the public key for recovery parameter i.
	RecoverPoint(digest []byte, sig RawSignature, i int) (CompressedPublicKey, error)

	// Verify checks sig over digest against pub.
	Verify(digest []byte, sig RawSignature, pub CompressedPublicKey) bool

	// PublicKey derives the compressed public key of key.
	PublicKey(key *PrivateKey) (CompressedPublicKey, error)
}

var backendConstructors = map[BackendKind]func() (Backend, error){
	BackendSecp256k1: newNativeBackend,
	BackendBtcec:     newBtcecBackend,
	BackendPure:      newPureBackend,
}

var logger Logger = log.NewFromGlobal(log.AddContext("pkg", "ecdsasig"))

// NewBackend builds and self tests a backend of the given kind. BackendAuto
// probes in preference order. The process backend is not affected.
func NewBackend(kind BackendKind) (Backend, error) {
	if kind == BackendAuto {
		var failures []string
		for _, candidate := range backendPreference {
			backend, err := NewBackend(candidate)
			if err == nil {
				return backend, nil
			}
			failures = append(failures, err.Error())
		}
		return nil, makeError(ErrBackendUnavailable, fmt.Sprintf(
			"no usable signing backend: %v", failures))
	}

	constructor, ok := backendConstructors[kind]
	if !ok {
		return nil, makeError(ErrUnknownBackend, fmt.Sprintf("unknown backend %s", kind))
	}

	backend, err := constructor()
	if err != nil {
		return nil, makeError(ErrBackendUnavailable, fmt.Sprintf(
			"backend %s unavailable: %v", kind, err))
	}
	if err := selfTest(backend); err != nil {
		return nil, makeError(ErrBackendUnavailable, fmt.Sprintf(
			"backend %s failed self test: %v", kind, err))
	}
	return backend, nil
}

var selected struct {
	once    sync.Once
	backend Backend
	err     error
}

// SelectBackend fixes the process backend on first call. Later calls with
// BackendAuto or with the selected kind return it, any other kind fails
// with ErrBackendFixed.
func SelectBackend(kind BackendKind) (Backend, error) {
	selected.once.Do(func() {
		selected.backend, selected.err = NewBackend(kind)
		if selected.err == nil {
			logger.Infof("using %s signing backend", selected.backend.Kind())
		}
	})

	if selected.err != nil {
		return nil, selected.err
	}
	if kind != BackendAuto && kind != selected.backend.Kind() {
		return nil, makeError(ErrBackendFixed, fmt.Sprintf(
			"cannot select backend %s: %s already in use", kind, selected.backend.Kind()))
	}
	return selected.backend, nil
}

// DefaultBackend returns the process backend, selecting it if needed.
func DefaultBackend() (Backend, error) {
	return SelectBackend(BackendAuto)
}

// generatorCompressed is G in compressed form, the public key of scalar 1.
var generatorCompressed = CompressedPublicKey{
	0x02, 0x79, 0xbe, 0x66, 0x7e, 0xf9, 0xdc, 0xbb, 0xac, 0x55, 0xa0, 0x62,
	0x95, 0xce, 0x87, 0x0b, 0x07, 0x02, 0x9b, 0xfc, 0xdb, 0x2d, 0xce, 0x28,
	0xd9, 0x59, 0xf2, 0x81, 0x5b, 0x16, 0xf8, 0x17, 0x98,
}

const selfTestAttempts = 64

// selfTest checks key derivation and a sign, recover and verify round trip.
func selfTest(backend Backend) error {
	var scalar [PrivateKeySize]byte
	scalar[PrivateKeySize-1] = 1
	one := &PrivateKey{d: scalar}

	pub, err := backend.PublicKey(one)
	if err != nil {
		return fmt.Errorf("deriving public key: %w", err)
	}
	if pub != generatorCompressed {
		return fmt.Errorf("public key of 1 is %s, expected generator", pub)
	}

	digest := sha256.Sum256([]byte("ecdsasig backend self test"))
	for attempt := 1; attempt <= selfTestAttempts; attempt++ {
		sig, recoveryParam, err := backend.SignRecoverable(digest[:], one, nonceExtra(digest[:], attempt, nil))
		if errors.Is(err, errNonCanonicalDraw) {
			continue
		}
		if err != nil {
			return fmt.Errorf("signing: %w", err)
		}

		if recoveryParam == NoRecoveryID {
			recoveryParam, err = DeriveRecoveryParam(backend, digest, sig, pub)
			if err != nil {
				return fmt.Errorf("deriving recovery parameter: %w", err)
			}
		}

		recovered, err := backend.RecoverPoint(digest[:], sig, recoveryParam)
		if err != nil {
			return fmt.Errorf("recovering public key: %w", err)
		}
		if !bytes.Equal(recovered[:], pub[:]) {
			return fmt.Errorf("recovered public key %s does not match %s", recovered, pub)
		}
		if !backend.Verify(digest[:], sig, pub) {
			return fmt.Errorf("signature does not verify")
		}
		return nil
	}
	return fmt.Errorf("no signature drawn in %d attempts", selfTestAttempts)
}
