package tokenauth

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// base64SecretPrefix marks secret material that is shipped base64-encoded
const base64SecretPrefix = "base64:"

// DecodeSecret interprets configured secret material. A "base64:" prefix
// marks encoded material and anything else is taken as raw bytes, so a raw
// secret that happens to look like base64 is never silently transformed.
func DecodeSecret(value string) ([]byte, error) {
	if encoded, ok := strings.CutPrefix(value, base64SecretPrefix); ok {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 secret: %w", err)
		}
		return decoded, nil
	}
	return []byte(value), nil
}

// SecretFromEnv loads the shared signing secret from an environment variable
func SecretFromEnv(name string) ([]byte, error) {
	value := os.Getenv(name)
	if value == "" {
		return nil, fmt.Errorf("environment variable %s is not set", name)
	}
	return DecodeSecret(value)
}

// SecretFromFile loads the shared signing secret from a file, trimming
// trailing whitespace
func SecretFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret file: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("secret file %s is empty", path)
	}
	return data, nil
}
