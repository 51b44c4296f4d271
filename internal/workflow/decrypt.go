package workflow

import (
	"fmt"

	"github.com/jlinoff/rsa-demo/internal/keycodec"
	"github.com/jlinoff/rsa-demo/internal/rsablock"
)

// DecryptConfig carries every parameter the decrypt workflow needs.
type DecryptConfig struct {
	PrivateKey []byte // raw bytes of a PKCS#1 PEM private key file.
	Ciphertext []byte // either raw envelope bytes or armored text; sniffed automatically.
}

// DecryptResult is the recovered plaintext.
type DecryptResult struct {
	Plaintext []byte
}

// RunDecrypt reads a PKCS#1 private key, sniffs armor off the ciphertext,
// and runs the block codec in reverse.
func RunDecrypt(cfg DecryptConfig) (*DecryptResult, error) {
	factors, err := keycodec.DecodePrivatePEM(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("workflow: reading private key: %w", err)
	}

	envelope, err := unarmor(cfg.Ciphertext)
	if err != nil {
		return nil, err
	}

	plaintext, err := rsablock.Decrypt(envelope, factors.N, factors.D)
	if err != nil {
		return nil, fmt.Errorf("workflow: decrypting: %w", err)
	}

	return &DecryptResult{Plaintext: plaintext}, nil
}
