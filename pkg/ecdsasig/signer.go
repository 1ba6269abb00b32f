package ecdsasig

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultProgressInterval is the number of draws between progress logs.
const DefaultProgressInterval = 20

// Signer produces canonical compact signatures. It is safe for concurrent use.
type Signer struct {
	backend          Backend
	hash             HashFunc
	logger           Logger
	progressInterval int
	clock            func() time.Time

	signaturesCounter prometheus.Counter
	attemptsObserver  prometheus.Observer
}

// NewSigner creates a signer hashing with SHA-256 on the given backend.
func NewSigner(backend Backend) *Signer {
	kind := backend.Kind().String()
	return &Signer{
		backend:           backend,
		hash:              SHA256,
		logger:            logger,
		progressInterval:  DefaultProgressInterval,
		signaturesCounter: signaturesCounter.WithLabelValues(kind),
		attemptsObserver:  signAttemptsHistogram.WithLabelValues(kind),
	}
}

// WithHash sets the message hash.
func (s *Signer) WithHash(hash HashFunc) *Signer {
	s.hash = hash
	return s
}

// WithLogger sets the logger.
func (s *Signer) WithLogger(logger Logger) *Signer {
	s.logger = logger
	return s
}

// WithProgressInterval sets how many draws pass between progress logs.
// Values below 1 are ignored.
func (s *Signer) WithProgressInterval(interval int) *Signer {
	if interval >= 1 {
		s.progressInterval = interval
	}
	return s
}

// WithTimestampEntropy mixes the current time into every nonce, making
// signatures non-deterministic.
func (s *Signer) WithTimestampEntropy(enabled bool) *Signer {
	if enabled {
		s.clock = time.Now
	} else {
		s.clock = nil
	}
	return s
}

// Backend returns the backend the signer draws from.
func (s *Signer) Backend() Backend {
	return s.backend
}

// Sign hashes message and signs the digest.
func (s *Signer) Sign(message []byte, key *PrivateKey) (CompactSignature, error) {
	return s.SignDigest(s.hash(message), key)
}

// SignDigest draws signatures until one is canonical and returns it with
// its recovery parameter in the header byte. There is no attempt limit.
func (s *Signer) SignDigest(digest [DigestSize]byte, key *PrivateKey) (CompactSignature, error) {
	if key == nil {
		return CompactSignature{}, makeError(ErrPrivateKeyInvalid, "private key is nil")
	}

	var (
		pub     CompressedPublicKey
		havePub bool
	)
	for attempt := 1; ; attempt++ {
		if attempt%s.progressInterval == 0 {
			s.logger.Infof("still searching for a canonical signature, tried %d times already", attempt)
		}

		extra := nonceExtra(digest[:], attempt, s.clock)
		sig, recoveryParam, err := s.backend.SignRecoverable(digest[:], key, extra)
		if errors.Is(err, errNonCanonicalDraw) {
			continue
		}
		if err != nil {
			return CompactSignature{}, fmt.Errorf("signing digest: %w", err)
		}
		if !IsCanonical(sig) {
			continue
		}

		if recoveryParam == NoRecoveryID {
			if !havePub {
				pub, err = s.backend.PublicKey(key)
				if err != nil {
					return CompactSignature{}, fmt.Errorf("deriving public key: %w", err)
				}
				havePub = true
			}
			recoveryParam, err = DeriveRecoveryParam(s.backend, digest, sig, pub)
			if err != nil {
				return CompactSignature{}, fmt.Errorf("deriving recovery parameter: %w", err)
			}
		}

		compact, err := NewCompactSignature(recoveryParam, sig)
		if err != nil {
			return CompactSignature{}, err
		}

		s.logger.Debugf("canonical signature found after %d attempt(s)", attempt)
		s.attemptsObserver.Observe(float64(attempt))
		s.signaturesCounter.Inc()
		return compact, nil
	}
}

// nonceExtra returns the RFC 6979 extra data for an attempt: none for the
// first, the 32-byte big-endian attempt number after that. With a clock,
// every attempt uses SHA-256(digest ‖ unix nanos ‖ attempt).
func nonceExtra(digest []byte, attempt int, clock func() time.Time) []byte {
	if clock != nil {
		var buf [16]byte
		binary.BigEndian.PutUint64(buf[:8], uint64(clock().UnixNano()))
		binary.BigEndian.PutUint64(buf[8:], uint64(attempt))

		h := sha256.New()
		h.Write(digest)
		h.Write(buf[:])
		return h.Sum(nil)
	}

	if attempt == 1 {
		return nil
	}
	extra := make([]byte, 32)
	binary.BigEndian.PutUint64(extra[24:], uint64(attempt))
	return extra
}
