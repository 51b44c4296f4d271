package workflow

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/jlinoff/rsa-demo/internal/keycodec"
	"github.com/jlinoff/rsa-demo/internal/rsablock"
	"github.com/jlinoff/rsa-demo/internal/rsaerr"
)

const (
	encryptedArmorBegin = "-----BEGIN JOES RSA ENCRYPTED DATA-----"
	encryptedArmorEnd   = "-----END JOES RSA ENCRYPTED DATA-----"
	armorWrapColumn     = 64
)

// EncryptConfig carries every parameter the encrypt workflow needs.
type EncryptConfig struct {
	PublicKey []byte // raw bytes of a PEM or SSH public key file.
	Plaintext []byte
	Binary    bool // true: raw envelope bytes; false: base64 PEM-style armor.
}

// EncryptResult is the produced ciphertext, ready to be written to a file or
// stdout by the caller.
type EncryptResult struct {
	Output []byte
}

// RunEncrypt reads a public key (auto-detecting PEM vs SSH by first-line
// sniff), runs the block codec, and optionally base64-armors the result.
func RunEncrypt(cfg EncryptConfig) (*EncryptResult, error) {
	n, e, err := readPublicKey(cfg.PublicKey)
	if err != nil {
		return nil, err
	}

	envelope, err := rsablock.Encrypt(cfg.Plaintext, n, e)
	if err != nil {
		return nil, fmt.Errorf("workflow: encrypting: %w", err)
	}

	if cfg.Binary {
		return &EncryptResult{Output: envelope}, nil
	}
	return &EncryptResult{Output: armor(envelope)}, nil
}

// readPublicKey sniffs the first line of key to decide whether it is PEM or
// SSH armored, then decodes it with the matching codec.
func readPublicKey(key []byte) (n, e *big.Int, err error) {
	sniffed := firstLine(key)
	switch {
	case bytes.HasPrefix(sniffed, []byte("-----BEGIN")):
		return keycodec.DecodePublicPEM(key)
	case bytes.HasPrefix(sniffed, []byte("ssh-rsa")):
		return keycodec.DecodeSSHPublic(key)
	default:
		return nil, nil, fmt.Errorf("workflow: unrecognized public key format (first line %q): %w", sniffed, rsaerr.KeyFormatError)
	}
}

func firstLine(data []byte) []byte {
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		return bytes.TrimSpace(data[:idx])
	}
	return bytes.TrimSpace(data)
}

// armor wraps raw envelope bytes in base64, 64-column wrapped, under the
// "JOES RSA ENCRYPTED DATA" PEM-style markers.
func armor(envelope []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(envelope)

	var buf bytes.Buffer
	buf.WriteString(encryptedArmorBegin)
	buf.WriteByte('\n')
	for i := 0; i < len(encoded); i += armorWrapColumn {
		end := i + armorWrapColumn
		if end > len(encoded) {
			end = len(encoded)
		}
		buf.WriteString(encoded[i:end])
		buf.WriteByte('\n')
	}
	buf.WriteString(encryptedArmorEnd)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// unarmor strips the PEM-style markers and base64-decodes the body. It
// returns the input unchanged if it doesn't carry the armor markers, so
// callers can feed either binary or armored ciphertext through the same
// path.
func unarmor(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte(encryptedArmorBegin)) {
		return data, nil
	}

	lines := bytes.Split(trimmed, []byte("\n"))
	if len(lines) < 2 {
		return nil, fmt.Errorf("workflow: truncated armored envelope: %w", rsaerr.EnvelopeError)
	}

	var b64 bytes.Buffer
	for _, line := range lines[1:] {
		line = bytes.TrimSpace(line)
		if bytes.Equal(line, []byte(encryptedArmorEnd)) {
			break
		}
		b64.Write(line)
	}

	decoded, err := base64.StdEncoding.DecodeString(b64.String())
	if err != nil {
		return nil, fmt.Errorf("workflow: base64-decoding armored envelope: %w: %v", rsaerr.EnvelopeError, err)
	}
	return decoded, nil
}
