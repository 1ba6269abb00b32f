package ecdsasig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}

func TestJSONParser_ParseSignatures(t *testing.T) {
	t.Parallel()

	_, pub := loadTestKey(t)
	parser := &JSONParser{}

	messages, err := parser.ParseSignatures(filepath.Join(fixturesDir(), "signed_messages.json"))
	require.NoError(t, err)
	require.Len(t, messages, 6)

	assert.Equal(t, []byte("hello world"), messages[0].Message)
	assert.Equal(t, []byte{}, messages[1].Message)
	assert.Equal(t, make([]byte, 16), messages[2].Message)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, messages[4].Message)
	assert.Nil(t, messages[5].PublicKey)

	for i, signed := range messages {
		assert.Len(t, signed.Signature, CompactSignatureSize, "#%d", i)
		if signed.PublicKey != nil {
			assert.Equal(t, pub[:], signed.PublicKey, "#%d", i)
		}
	}
}

func TestJSONParser_ParseSignatures_CustomFields(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "custom.json", `[
  {"msg": "hello", "sig": "0x1f00", "pk": "02aa"}
]`)
	parser := &JSONParser{MessageField: "msg", SignatureField: "sig", PublicKeyField: "pk"}

	messages, err := parser.ParseSignatures(path)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, []byte("hello"), messages[0].Message)
	assert.Equal(t, []byte{0x1f, 0x00}, messages[0].Signature)
	assert.Equal(t, []byte{0x02, 0xaa}, messages[0].PublicKey)
}

func TestJSONParser_ParseSignatures_errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"not_json":          `{`,
		"not_array":         `{"message": "m"}`,
		"missing_message":   `[{"signature": "00"}]`,
		"missing_signature": `[{"message": "m"}]`,
		"bad_signature_hex": `[{"message": "m", "signature": "zz"}]`,
		"bad_message_hex":   `[{"message": "0xzz", "signature": "00"}]`,
		"numeric_message":   `[{"message": 12, "signature": "00"}]`,
		"numeric_key":       `[{"message": "m", "signature": "00", "public_key": 3}]`,
	}

	for name, content := range testCases {
		content := content
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeTempFile(t, "input.json", content)
			_, err := (&JSONParser{}).ParseSignatures(path)
			assert.Error(t, err)
		})
	}

	_, err := (&JSONParser{}).ParseSignatures(filepath.Join(fixturesDir(), "nonexistent.json"))
	assert.Error(t, err)
}

func TestCSVParser_ParseSignatures(t *testing.T) {
	t.Parallel()

	jsonMessages, err := (&JSONParser{}).ParseSignatures(filepath.Join(fixturesDir(), "signed_messages.json"))
	require.NoError(t, err)

	csvMessages, err := (&CSVParser{}).ParseSignatures(filepath.Join(fixturesDir(), "signed_messages.csv"))
	require.NoError(t, err)

	assert.Equal(t, jsonMessages, csvMessages)
}

func TestCSVParser_ParseSignatures_errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"empty":             ``,
		"missing_signature": "message,public_key\nm,02aa\n",
		"bad_hex":           "message,signature\nm,zz\n",
		"ragged":            "message,signature\nm,00,extra\n",
	}

	for name, content := range testCases {
		content := content
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeTempFile(t, "input.csv", content)
			_, err := (&CSVParser{}).ParseSignatures(path)
			assert.Error(t, err)
		})
	}
}

func TestCSVParser_ParseSignatures_withoutPublicKeyColumn(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "input.csv", "signature,message\n1f00,hello\n")
	messages, err := (&CSVParser{}).ParseSignatures(path)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, []byte("hello"), messages[0].Message)
	assert.Nil(t, messages[0].PublicKey)
}
