package ecdsasig

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// SignedMessage is a message with its compact signature and, optionally,
// the public key it is expected to recover to.
type SignedMessage struct {
	Message   []byte
	Signature []byte
	PublicKey []byte // nil when unknown
}

// SignatureParser defines the interface for parsing signed messages from
// various sources.
type SignatureParser interface {
	// ParseSignatures parses signed messages from a source and returns them.
	ParseSignatures(source string) ([]*SignedMessage, error)
}

// JSONParser parses signed messages from JSON files.
type JSONParser struct {
	MessageField   string // Field name for message (default: "message")
	SignatureField string // Field name for signature (default: "signature")
	PublicKeyField string // Field name for public key (default: "public_key")
}

// ParseSignatures parses signed messages from a JSON file.
//
// Expected format:
// [
//   {"message": "hello", "signature": "1f...", "public_key": "02..."},
//   {"message": "0x68656c6c6f", "signature": "0x20..."}
// ]
//
// Messages starting with 0x are hex decoded, anything else is taken as text.
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*SignedMessage, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	var items []map[string]interface{}
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	messageField := defaultName(p.MessageField, "message")
	signatureField := defaultName(p.SignatureField, "signature")
	publicKeyField := defaultName(p.PublicKeyField, "public_key")

	messages := make([]*SignedMessage, 0, len(items))
	for i, item := range items {
		msgVal, ok := item[messageField]
		if !ok {
			return nil, fmt.Errorf("item %d: missing %s field", i, messageField)
		}
		sigVal, ok := item[signatureField]
		if !ok {
			return nil, fmt.Errorf("item %d: missing %s field", i, signatureField)
		}

		var pubVal string
		if raw, ok := item[publicKeyField]; ok {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: %s field must be a string", i, publicKeyField)
			}
			pubVal = s
		}

		msgStr, ok := msgVal.(string)
		if !ok {
			return nil, fmt.Errorf("item %d: %s field must be a string", i, messageField)
		}
		sigStr, ok := sigVal.(string)
		if !ok {
			return nil, fmt.Errorf("item %d: %s field must be a string", i, signatureField)
		}

		signed, err := newSignedMessage(msgStr, sigStr, pubVal)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		messages = append(messages, signed)
	}

	return messages, nil
}

// CSVParser parses signed messages from CSV files with a header row.
type CSVParser struct {
	MessageCol   string // Column name for message (default: "message")
	SignatureCol string // Column name for signature (default: "signature")
	PublicKeyCol string // Column name for public key (default: "public_key", optional)
}

// ParseSignatures parses signed messages from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*SignedMessage, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	messageCol := defaultName(p.MessageCol, "message")
	signatureCol := defaultName(p.SignatureCol, "signature")
	publicKeyCol := defaultName(p.PublicKeyCol, "public_key")

	messageIdx, signatureIdx, publicKeyIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case messageCol:
			messageIdx = i
		case signatureCol:
			signatureIdx = i
		case publicKeyCol:
			publicKeyIdx = i
		}
	}
	if messageIdx == -1 || signatureIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s or %s", messageCol, signatureCol)
	}

	messages := make([]*SignedMessage, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		var pubVal string
		if publicKeyIdx >= 0 {
			pubVal = record[publicKeyIdx]
		}
		signed, err := newSignedMessage(record[messageIdx], record[signatureIdx], pubVal)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		messages = append(messages, signed)
	}

	return messages, nil
}

func newSignedMessage(message, signature, publicKey string) (*SignedMessage, error) {
	signed := &SignedMessage{Message: []byte(message)}

	if strings.HasPrefix(message, "0x") || strings.HasPrefix(message, "0X") {
		decoded, err := hexDecode(message)
		if err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		signed.Message = decoded
	}

	sig, err := hexDecode(signature)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	signed.Signature = sig

	if publicKey != "" {
		pub, err := hexDecode(publicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode public key: %w", err)
		}
		signed.PublicKey = pub
	}

	return signed, nil
}

func defaultName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
