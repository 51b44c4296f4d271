// Package keycodec reads and writes the three on-disk key formats the
// toolkit supports: PKCS#1 DER private and public keys under PEM armor, and
// the SSH wire public key format.
package keycodec

import (
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"

	"github.com/jlinoff/rsa-demo/internal/rsaerr"
	"github.com/jlinoff/rsa-demo/internal/rsakey"
)

const (
	privateBlockType = "RSA PRIVATE KEY"
	publicBlockType  = "RSA PUBLIC KEY"
)

// pkcs1PrivateKey mirrors the ASN.1 SEQUENCE of nine integers the PKCS#1
// RSAPrivateKey structure defines: version, n, e, d, p, q, dp, dq, qinv.
type pkcs1PrivateKey struct {
	Version int
	N       *big.Int
	E       *big.Int
	D       *big.Int
	P       *big.Int
	Q       *big.Int
	Dp      *big.Int
	Dq      *big.Int
	Qinv    *big.Int
}

// pkcs1PublicKey mirrors the two-integer SEQUENCE { n, e } used for PKCS#1
// public keys.
type pkcs1PublicKey struct {
	N *big.Int
	E *big.Int
}

// EncodePrivatePEM renders f as a PKCS#1 DER SEQUENCE wrapped in
// "RSA PRIVATE KEY" PEM armor, 64-column base64 body.
func EncodePrivatePEM(f *rsakey.Factors) ([]byte, error) {
	der, err := asn1.Marshal(pkcs1PrivateKey{
		Version: f.Version,
		N:       f.N,
		E:       f.E,
		D:       f.D,
		P:       f.P,
		Q:       f.Q,
		Dp:      f.Dp,
		Dq:      f.Dq,
		Qinv:    f.Qinv,
	})
	if err != nil {
		return nil, fmt.Errorf("keycodec: marshaling PKCS#1 private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: privateBlockType, Bytes: der}), nil
}

// DecodePrivatePEM parses a "RSA PRIVATE KEY" PEM block back into a Factors
// bundle. It does not re-derive dp/dq/qinv; it trusts the stored values.
func DecodePrivatePEM(data []byte) (*rsakey.Factors, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("keycodec: no PEM block found: %w", rsaerr.KeyFormatError)
	}
	if block.Type != privateBlockType {
		return nil, fmt.Errorf("keycodec: PEM block type %q, want %q: %w", block.Type, privateBlockType, rsaerr.KeyFormatError)
	}

	var k pkcs1PrivateKey
	rest, err := asn1.Unmarshal(block.Bytes, &k)
	if err != nil {
		return nil, fmt.Errorf("keycodec: unmarshaling PKCS#1 private key: %w: %v", rsaerr.KeyFormatError, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("keycodec: trailing bytes after PKCS#1 SEQUENCE: %w", rsaerr.KeyFormatError)
	}

	phi := new(big.Int).Mul(new(big.Int).Sub(k.P, one), new(big.Int).Sub(k.Q, one))
	return &rsakey.Factors{
		Version: k.Version,
		P:       k.P,
		Q:       k.Q,
		N:       k.N,
		Phi:     phi,
		E:       k.E,
		D:       k.D,
		Dp:      k.Dp,
		Dq:      k.Dq,
		Qinv:    k.Qinv,
	}, nil
}

var one = big.NewInt(1)

// EncodePublicPEM renders the public pair (n, e) as a PKCS#1 DER SEQUENCE
// wrapped in "RSA PUBLIC KEY" PEM armor.
func EncodePublicPEM(n, e *big.Int) ([]byte, error) {
	der, err := asn1.Marshal(pkcs1PublicKey{N: n, E: e})
	if err != nil {
		return nil, fmt.Errorf("keycodec: marshaling PKCS#1 public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: publicBlockType, Bytes: der}), nil
}

// DecodePublicPEM parses a "RSA PUBLIC KEY" PEM block into its n, e pair.
func DecodePublicPEM(data []byte) (n, e *big.Int, err error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, nil, fmt.Errorf("keycodec: no PEM block found: %w", rsaerr.KeyFormatError)
	}
	if block.Type != publicBlockType {
		return nil, nil, fmt.Errorf("keycodec: PEM block type %q, want %q: %w", block.Type, publicBlockType, rsaerr.KeyFormatError)
	}

	var k pkcs1PublicKey
	rest, uerr := asn1.Unmarshal(block.Bytes, &k)
	if uerr != nil {
		return nil, nil, fmt.Errorf("keycodec: unmarshaling PKCS#1 public key: %w: %v", rsaerr.KeyFormatError, uerr)
	}
	if len(rest) != 0 {
		return nil, nil, fmt.Errorf("keycodec: trailing bytes after PKCS#1 SEQUENCE: %w", rsaerr.KeyFormatError)
	}
	return k.N, k.E, nil
}
