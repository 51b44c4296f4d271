package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestKeygenEncryptDecryptEndToEnd exercises the three subcommands exactly
// as a shell user would: keygen writes key files, encrypt consumes the
// public PEM key, decrypt consumes the private key and recovers the
// original plaintext.
func TestKeygenEncryptDecryptEndToEnd(t *testing.T) {
	dir := t.TempDir()
	keyBase := filepath.Join(dir, "testkey")

	if err := KeygenCommand([]string{
		"-out", keyBase,
		"-numbits", "256",
		"-seed", "12345",
		"-rounds", "20",
	}); err != nil {
		t.Fatalf("KeygenCommand: %v", err)
	}

	for _, suffix := range []string{"", ".pub.pem", ".pub"} {
		if _, err := os.Stat(keyBase + suffix); err != nil {
			t.Fatalf("expected key file %s%s to exist: %v", keyBase, suffix, err)
		}
	}

	plaintextPath := filepath.Join(dir, "plaintext.txt")
	ciphertextPath := filepath.Join(dir, "ciphertext.txt")
	recoveredPath := filepath.Join(dir, "recovered.txt")
	plaintext := []byte("the rain in spain falls mainly on the plain")

	if err := os.WriteFile(plaintextPath, plaintext, 0644); err != nil {
		t.Fatalf("writing plaintext fixture: %v", err)
	}

	if err := EncryptCommand([]string{
		"-key", keyBase + ".pub.pem",
		"-input", plaintextPath,
		"-output", ciphertextPath,
	}); err != nil {
		t.Fatalf("EncryptCommand: %v", err)
	}

	if err := DecryptCommand([]string{
		"-key", keyBase,
		"-input", ciphertextPath,
		"-output", recoveredPath,
	}); err != nil {
		t.Fatalf("DecryptCommand: %v", err)
	}

	recovered, err := os.ReadFile(recoveredPath)
	if err != nil {
		t.Fatalf("reading recovered plaintext: %v", err)
	}
	if !bytes.Equal(recovered, plaintext) {
		t.Fatalf("recovered = %q, want %q", recovered, plaintext)
	}
}

func TestEncryptCommandRequiresKeyFlag(t *testing.T) {
	err := EncryptCommand([]string{})
	if err == nil {
		t.Fatalf("EncryptCommand accepted missing --key")
	}
}

func TestKeygenCommandRequiresOutFlag(t *testing.T) {
	err := KeygenCommand([]string{})
	if err == nil {
		t.Fatalf("KeygenCommand accepted missing --out")
	}
}
