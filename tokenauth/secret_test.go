package tokenauth

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

// TestDecodeSecret tests that only the explicit base64: prefix triggers
// decoding; unprefixed values are raw bytes even when they look like base64
func TestDecodeSecret(t *testing.T) {
	raw := []byte("this-secret-has-dashes-so-it-is-raw-bytes!!")
	encoded := "base64:" + base64.StdEncoding.EncodeToString(raw)

	got, err := DecodeSecret(encoded)
	if err != nil {
		t.Fatalf("DecodeSecret failed: %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("Expected prefixed value to decode, got %q", got)
	}

	// A raw secret that happens to be valid base64 must not be transformed
	hexLike := "00112233445566778899aabbccddeeff"
	got, err = DecodeSecret(hexLike)
	if err != nil {
		t.Fatalf("DecodeSecret failed: %v", err)
	}
	if string(got) != hexLike {
		t.Errorf("Expected unprefixed value to pass through, got %q", got)
	}

	if _, err := DecodeSecret("base64:!!!not-base64!!!"); err == nil {
		t.Error("Expected error for invalid base64 after the prefix")
	}
}

// TestSecretFromEnv tests environment-based secret loading
func TestSecretFromEnv(t *testing.T) {
	t.Run("set variable", func(t *testing.T) {
		t.Setenv("TOKENAUTH_TEST_SECRET", "plain-secret-value-with-dashes-inside")
		secret, err := SecretFromEnv("TOKENAUTH_TEST_SECRET")
		if err != nil {
			t.Fatalf("SecretFromEnv failed: %v", err)
		}
		if string(secret) != "plain-secret-value-with-dashes-inside" {
			t.Errorf("Unexpected secret %q", secret)
		}
	})

	t.Run("unset variable", func(t *testing.T) {
		if _, err := SecretFromEnv("TOKENAUTH_TEST_SECRET_UNSET"); err == nil {
			t.Error("Expected error for unset variable")
		}
	})
}

// TestSecretFromFile tests file-based secret loading
func TestSecretFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("trims trailing whitespace", func(t *testing.T) {
		path := filepath.Join(dir, "secret")
		if err := os.WriteFile(path, []byte("file-secret-material\n"), 0o600); err != nil {
			t.Fatalf("Failed to write secret file: %v", err)
		}
		secret, err := SecretFromFile(path)
		if err != nil {
			t.Fatalf("SecretFromFile failed: %v", err)
		}
		if string(secret) != "file-secret-material" {
			t.Errorf("Unexpected secret %q", secret)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
			t.Fatalf("Failed to write secret file: %v", err)
		}
		if _, err := SecretFromFile(path); err == nil {
			t.Error("Expected error for empty secret file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := SecretFromFile(filepath.Join(dir, "missing")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}
