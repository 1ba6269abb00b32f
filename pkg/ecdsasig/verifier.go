package ecdsasig

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Verifier recovers and checks the signer of compact signatures. It is safe
// for concurrent use.
type Verifier struct {
	backend Backend
	hash    HashFunc
	logger  Logger

	validCounter   prometheus.Counter
	invalidCounter prometheus.Counter
}

// NewVerifier creates a verifier hashing with SHA-256 on the given backend.
func NewVerifier(backend Backend) *Verifier {
	kind := backend.Kind().String()
	return &Verifier{
		backend:        backend,
		hash:           SHA256,
		logger:         logger,
		validCounter:   verificationsCounter.WithLabelValues(kind, resultValid),
		invalidCounter: verificationsCounter.WithLabelValues(kind, resultInvalid),
	}
}

// WithHash sets the message hash.
func (v *Verifier) WithHash(hash HashFunc) *Verifier {
	v.hash = hash
	return v
}

// WithLogger sets the logger.
func (v *Verifier) WithLogger(logger Logger) *Verifier {
	v.logger = logger
	return v
}

// VerifyOption modifies a single verification.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	recoveryParam *int
}

// WithRecoveryParam overrides the recovery parameter read from the header.
func WithRecoveryParam(i int) VerifyOption {
	return func(o *verifyOptions) {
		o.recoveryParam = &i
	}
}

// Verify hashes message, recovers the signer of sig and returns its
// compressed public key.
func (v *Verifier) Verify(message, sig []byte, opts ...VerifyOption) (CompressedPublicKey, error) {
	return v.VerifyDigest(v.hash(message), sig, opts...)
}

// VerifyDigest recovers the signer of sig over digest. The signature must
// also verify against the recovered key.
func (v *Verifier) VerifyDigest(digest [DigestSize]byte, sig []byte, opts ...VerifyOption) (
	CompressedPublicKey, error) {
	pub, err := v.verifyDigest(digest, sig, opts)
	if err != nil {
		v.invalidCounter.Inc()
		return CompressedPublicKey{}, err
	}
	v.validCounter.Inc()
	return pub, nil
}

func (v *Verifier) verifyDigest(digest [DigestSize]byte, sig []byte, opts []VerifyOption) (
	CompressedPublicKey, error) {
	compact, err := ParseCompactSignature(sig)
	if err != nil {
		return CompressedPublicKey{}, err
	}

	var o verifyOptions
	for _, opt := range opts {
		opt(&o)
	}

	recoveryParam := compact.RecoveryParam()
	if o.recoveryParam != nil {
		recoveryParam = *o.recoveryParam
	}
	if recoveryParam < 0 {
		v.logger.Warnf("could not recover parameter from header byte %d", compact.Header())
		return CompressedPublicKey{}, makeError(ErrRecoveryParamUnavailable, fmt.Sprintf(
			"header byte %d does not encode a recovery parameter", compact.Header()))
	}
	if recoveryParam > maxRecoveryParam {
		return CompressedPublicKey{}, makeError(ErrSigInvalidRecoveryParam, fmt.Sprintf(
			"invalid recovery parameter %d", recoveryParam))
	}

	raw := compact.Raw()
	pub, err := v.backend.RecoverPoint(digest[:], raw, recoveryParam)
	if err != nil {
		return CompressedPublicKey{}, fmt.Errorf("recovering public key: %w", err)
	}

	if !v.backend.Verify(digest[:], raw, pub) {
		return CompressedPublicKey{}, makeError(ErrSignatureMismatch,
			"signature does not verify against the recovered public key")
	}
	return pub, nil
}
