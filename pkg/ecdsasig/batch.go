package ecdsasig

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// batchProgressInterval is the number of verified items between progress logs.
const batchProgressInterval = 1000

// BatchResult is the outcome of verifying one SignedMessage.
type BatchResult struct {
	Index     int
	PublicKey CompressedPublicKey
	Err       error
}

// Valid reports whether the item verified.
func (r BatchResult) Valid() bool {
	return r.Err == nil
}

// BatchVerifier verifies signed messages over a pool of workers.
type BatchVerifier struct {
	verifier   *Verifier
	numWorkers int
	logger     Logger
}

// NewBatchVerifier creates a batch verifier with one worker per CPU.
func NewBatchVerifier(verifier *Verifier) *BatchVerifier {
	return &BatchVerifier{
		verifier: verifier,
		logger:   logger,
	}
}

// WithWorkers sets the number of workers, 0 meaning one per CPU.
func (b *BatchVerifier) WithWorkers(numWorkers int) *BatchVerifier {
	b.numWorkers = numWorkers
	return b
}

// WithLogger sets the logger.
func (b *BatchVerifier) WithLogger(logger Logger) *BatchVerifier {
	b.logger = logger
	return b
}

// Verify checks every message and returns one result per input, in input
// order. When a message carries a public key, the recovered key must match
// it. Items not reached before ctx is done carry ctx.Err().
func (b *BatchVerifier) Verify(ctx context.Context, messages []*SignedMessage) []BatchResult {
	results := make([]BatchResult, len(messages))
	done := make([]bool, len(messages))

	numWorkers := b.numWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	verified := int64(0)
	workChan := make(chan int, numWorkers*4)

	go func() {
		defer close(workChan)
		for i := range messages {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-workChan:
					if !ok {
						return
					}
					results[i] = b.verifyOne(i, messages[i])
					done[i] = true

					count := atomic.AddInt64(&verified, 1)
					if count%batchProgressInterval == 0 {
						b.logger.Infof("verified %d of %d signatures", count, len(messages))
					}
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if !done[i] {
				results[i] = BatchResult{Index: i, Err: err}
			}
		}
	}

	return results
}

func (b *BatchVerifier) verifyOne(index int, signed *SignedMessage) BatchResult {
	result := BatchResult{Index: index}
	if signed == nil {
		result.Err = makeError(ErrSigInvalidLen, "missing signed message")
		return result
	}

	pub, err := b.verifier.Verify(signed.Message, signed.Signature)
	if err != nil {
		result.Err = err
		return result
	}
	result.PublicKey = pub

	if signed.PublicKey != nil {
		expected, err := ParseCompressedPublicKey(signed.PublicKey)
		if err != nil {
			result.Err = err
			return result
		}
		if expected != pub {
			result.Err = makeError(ErrSignatureMismatch, fmt.Sprintf(
				"recovered public key %s, expected %s", pub, expected))
		}
	}
	return result
}
