package ecdsasig

import (
	"context"
	"fmt"
)

// Client provides a high-level API over signing, verification and batch
// verification.
type Client struct {
	backendKind      BackendKind
	backend          Backend
	hash             HashFunc
	logger           Logger
	parser           SignatureParser
	numWorkers       int
	progressInterval int
	timestampEntropy bool
	prefix           string
}

// NewClient creates a new client with default settings: the process
// backend, SHA-256 and JSON input files.
func NewClient() *Client {
	return &Client{
		backendKind:      BackendAuto,
		hash:             SHA256,
		logger:           logger,
		parser:           &JSONParser{},
		progressInterval: DefaultProgressInterval,
		prefix:           DefaultPrefix,
	}
}

// WithBackend requests a backend kind for the process-wide selection.
func (c *Client) WithBackend(kind BackendKind) *Client {
	c.backendKind = kind
	return c
}

// WithBackendInstance uses backend directly, bypassing the process-wide
// selection.
func (c *Client) WithBackendInstance(backend Backend) *Client {
	c.backend = backend
	return c
}

// WithHash sets the message hash.
func (c *Client) WithHash(hash HashFunc) *Client {
	c.hash = hash
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithWorkers sets the batch verification worker count, 0 meaning one per CPU.
func (c *Client) WithWorkers(numWorkers int) *Client {
	c.numWorkers = numWorkers
	return c
}

// WithProgressInterval sets how many signing draws pass between progress logs.
func (c *Client) WithProgressInterval(interval int) *Client {
	c.progressInterval = interval
	return c
}

// WithTimestampEntropy mixes the current time into signing nonces.
func (c *Client) WithTimestampEntropy(enabled bool) *Client {
	c.timestampEntropy = enabled
	return c
}

// WithPrefix sets the public key display prefix.
func (c *Client) WithPrefix(prefix string) *Client {
	c.prefix = prefix
	return c
}

// Backend returns the backend the client works on.
func (c *Client) Backend() (Backend, error) {
	if c.backend != nil {
		return c.backend, nil
	}
	return SelectBackend(c.backendKind)
}

// Signer returns a signer configured like the client.
func (c *Client) Signer() (*Signer, error) {
	backend, err := c.Backend()
	if err != nil {
		return nil, err
	}
	return NewSigner(backend).
		WithHash(c.hash).
		WithLogger(c.logger).
		WithProgressInterval(c.progressInterval).
		WithTimestampEntropy(c.timestampEntropy), nil
}

// Verifier returns a verifier configured like the client.
func (c *Client) Verifier() (*Verifier, error) {
	backend, err := c.Backend()
	if err != nil {
		return nil, err
	}
	return NewVerifier(backend).WithHash(c.hash).WithLogger(c.logger), nil
}

// Sign signs message with key.
func (c *Client) Sign(message []byte, key *PrivateKey) (CompactSignature, error) {
	signer, err := c.Signer()
	if err != nil {
		return CompactSignature{}, err
	}
	return signer.Sign(message, key)
}

// Verify recovers the signer of sig over message.
func (c *Client) Verify(message, sig []byte, opts ...VerifyOption) (CompressedPublicKey, error) {
	verifier, err := c.Verifier()
	if err != nil {
		return CompressedPublicKey{}, err
	}
	return verifier.Verify(message, sig, opts...)
}

// RecoverParameter finds the recovery parameter of sig over message for the
// claimed public key. sig is either r ‖ s or a compact signature, whose
// header is ignored.
func (c *Client) RecoverParameter(message, sig []byte, claimed CompressedPublicKey) (int, error) {
	var raw RawSignature
	switch len(sig) {
	case RawSignatureSize:
		copy(raw[:], sig)
	case CompactSignatureSize:
		copy(raw[:], sig[1:])
	default:
		return 0, makeError(ErrSigInvalidLen, fmt.Sprintf(
			"malformed signature: invalid length: %d", len(sig)))
	}

	backend, err := c.Backend()
	if err != nil {
		return 0, err
	}
	return DeriveRecoveryParam(backend, c.hash(message), raw, claimed)
}

// PublicKey derives the display public key of key.
func (c *Client) PublicKey(key *PrivateKey) (PublicKey, error) {
	backend, err := c.Backend()
	if err != nil {
		return PublicKey{}, err
	}
	pub, err := backend.PublicKey(key)
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(pub, c.prefix), nil
}

// VerifyFile parses the signed messages in source and verifies them all.
func (c *Client) VerifyFile(ctx context.Context, source string) ([]BatchResult, error) {
	messages, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	return c.VerifyMessages(ctx, messages)
}

// VerifyMessages verifies in-memory signed messages. Use this when you have
// already parsed them with your own parser.
func (c *Client) VerifyMessages(ctx context.Context, messages []*SignedMessage) ([]BatchResult, error) {
	verifier, err := c.Verifier()
	if err != nil {
		return nil, err
	}
	batch := NewBatchVerifier(verifier).WithWorkers(c.numWorkers).WithLogger(c.logger)
	return batch.Verify(ctx, messages), nil
}
