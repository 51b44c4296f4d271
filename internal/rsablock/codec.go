// Package rsablock implements the block-oriented textbook RSA pipeline:
// fragmenting a byte stream into fixed-width big-endian integer blocks,
// applying modular exponentiation to each, and framing the result with the
// "joes-rsa" envelope header.
package rsablock

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/jlinoff/rsa-demo/internal/rsaerr"
)

const (
	magic       = "joes-rsa"
	version     = 0
	headerLen   = 8 + 2 + 2 // magic + version + padding
	padByte     = 'x'
	maxBlockLen = 0xffff
)

// BlockSize returns B, the per-block plaintext size in bytes, for a modulus
// n: B = floor(bitlen(n) / 8).
func BlockSize(n *big.Int) int {
	return n.BitLen() / 8
}

// Encrypt fragments plaintext into B-byte blocks, encrypts each with m^e mod
// n, and prepends the envelope header. Empty plaintext is padded to exactly
// one full block of 'x' bytes so the envelope always carries at least one
// ciphertext block.
func Encrypt(plaintext []byte, n, e *big.Int) ([]byte, error) {
	b := BlockSize(n)
	if b <= 0 {
		return nil, fmt.Errorf("rsablock: modulus too small for any block size: %w", rsaerr.CryptoError)
	}
	if b >= maxBlockLen {
		return nil, fmt.Errorf("rsablock: block size %d does not fit the envelope's 2-byte header field: %w", b, rsaerr.CryptoError)
	}

	padded, pad := padToBlock(plaintext, b)

	out := make([]byte, 0, headerLen+len(padded)/b*(b+1))
	out = append(out, []byte(magic)...)
	out = appendUint16(out, version)
	out = appendUint16(out, uint16(pad))

	for i := 0; i < len(padded); i += b {
		block := padded[i : i+b]
		m := new(big.Int).SetBytes(block)
		c := new(big.Int).Exp(m, e, n)
		out = append(out, c.FillBytes(make([]byte, b+1))...)
	}
	return out, nil
}

// Decrypt verifies the envelope header, decrypts each (B+1)-byte ciphertext
// block with c^d mod n, and strips the trailing padding recorded in the
// header.
func Decrypt(envelope []byte, n, d *big.Int) ([]byte, error) {
	if len(envelope) < headerLen {
		return nil, fmt.Errorf("rsablock: envelope shorter than header: %w", rsaerr.EnvelopeError)
	}
	if string(envelope[:8]) != magic {
		return nil, fmt.Errorf("rsablock: bad magic %q: %w", envelope[:8], rsaerr.EnvelopeError)
	}
	gotVersion := binary.BigEndian.Uint16(envelope[8:10])
	if gotVersion != version {
		return nil, fmt.Errorf("rsablock: unsupported envelope version %d: %w", gotVersion, rsaerr.EnvelopeError)
	}
	pad := int(binary.BigEndian.Uint16(envelope[10:12]))

	body := envelope[headerLen:]
	b := BlockSize(n)
	if b <= 0 {
		return nil, fmt.Errorf("rsablock: modulus too small for any block size: %w", rsaerr.CryptoError)
	}
	blockWidth := b + 1
	if len(body)%blockWidth != 0 {
		return nil, fmt.Errorf("rsablock: ciphertext length %d not a multiple of block width %d: %w", len(body), blockWidth, rsaerr.EnvelopeError)
	}

	plaintext := make([]byte, 0, len(body)/blockWidth*b)
	for i := 0; i < len(body); i += blockWidth {
		block := body[i : i+blockWidth]
		c := new(big.Int).SetBytes(block)
		m := new(big.Int).Exp(c, d, n)
		plaintext = append(plaintext, m.FillBytes(make([]byte, b))...)
	}

	if pad > 0 {
		if pad > len(plaintext) {
			return nil, fmt.Errorf("rsablock: padding count %d exceeds plaintext length %d: %w", pad, len(plaintext), rsaerr.EnvelopeError)
		}
		plaintext = plaintext[:len(plaintext)-pad]
	}
	return plaintext, nil
}

// padToBlock appends 'x' bytes until the plaintext length is a positive
// multiple of b, returning the padded buffer and the number of bytes added.
// Empty input always receives one full block of padding; non-empty input
// that is already block-aligned receives none.
func padToBlock(plaintext []byte, b int) ([]byte, int) {
	out := append([]byte(nil), plaintext...)
	pad := 0
	if len(out) == 0 {
		for pad < b {
			out = append(out, padByte)
			pad++
		}
		return out, pad
	}
	for len(out)%b != 0 {
		out = append(out, padByte)
		pad++
	}
	return out, pad
}

func appendUint16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}
