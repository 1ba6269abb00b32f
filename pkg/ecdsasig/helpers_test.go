package ecdsasig

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testKeyInfo struct {
	PrivateKey   string `json:"private_key"`
	PublicKeyHex string `json:"public_key_hex"`
	PublicKey    string `json:"public_key"`
}

func fixturesDir() string {
	return filepath.Join("..", "..", "fixtures")
}

// loadTestKeyInfo reads the test key information from fixtures/test_key_info.json
func loadTestKeyInfo(t *testing.T) testKeyInfo {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(fixturesDir(), "test_key_info.json"))
	require.NoError(t, err)

	var info testKeyInfo
	err = json.Unmarshal(data, &info)
	require.NoError(t, err)
	return info
}

func loadTestKey(t *testing.T) (*PrivateKey, CompressedPublicKey) {
	t.Helper()

	info := loadTestKeyInfo(t)
	key, err := PrivateKeyFromHex(info.PrivateKey)
	require.NoError(t, err)
	pub, err := ParseCompressedPublicKeyHex(info.PublicKeyHex)
	require.NoError(t, err)
	return key, pub
}

func keyFromInt(t *testing.T, k int64) *PrivateKey {
	t.Helper()

	var b [PrivateKeySize]byte
	big.NewInt(k).FillBytes(b[:])
	key, err := NewPrivateKey(b[:])
	require.NoError(t, err)
	return key
}

// keyFromSeed derives a deterministic test key.
func keyFromSeed(t *testing.T, seed string) *PrivateKey {
	t.Helper()

	d := SHA256([]byte(seed))
	key, err := NewPrivateKey(d[:])
	require.NoError(t, err)
	return key
}

var allBackendKinds = []BackendKind{BackendSecp256k1, BackendBtcec, BackendPure}

func newTestBackends(t *testing.T) map[BackendKind]Backend {
	t.Helper()

	backends := make(map[BackendKind]Backend, len(allBackendKinds))
	for _, kind := range allBackendKinds {
		backend, err := NewBackend(kind)
		require.NoError(t, err)
		backends[kind] = backend
	}
	return backends
}

type discardLogger struct{}

func (discardLogger) Debugf(string, ...interface{}) {}
func (discardLogger) Infof(string, ...interface{})  {}
func (discardLogger) Warnf(string, ...interface{})  {}
