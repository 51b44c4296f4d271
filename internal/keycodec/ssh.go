package keycodec

import (
	"bytes"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"

	"golang.org/x/crypto/ssh"

	"github.com/jlinoff/rsa-demo/internal/rsaerr"
)

// EncodeSSHPublic renders the (n, e) subset of a key as an
// "ssh-rsa AAAA... comment" authorized_keys line, using the same
// three-length-prefixed-field wire format as OpenSSH: algorithm name, public
// exponent, and a zero-padded modulus.
func EncodeSSHPublic(n, e *big.Int, comment string) ([]byte, error) {
	if !e.IsInt64() || e.Int64() > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("keycodec: public exponent does not fit a machine int: %w", rsaerr.KeyFormatError)
	}
	pub := &rsa.PublicKey{N: n, E: int(e.Int64())}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("keycodec: building SSH public key: %w: %v", rsaerr.KeyFormatError, err)
	}

	line := ssh.MarshalAuthorizedKey(sshPub)
	if comment != "" {
		// MarshalAuthorizedKey ends the line with "\n"; splice the comment in
		// before it, matching the "algo data comment\n" authorized_keys shape.
		line = append(line[:len(line)-1], append([]byte(" "+comment), '\n')...)
	}
	return line, nil
}

// DecodeSSHPublic parses an authorized_keys-style "ssh-rsa AAAA... comment"
// line back into its n, e pair. It rejects any algorithm other than
// ssh-rsa.
func DecodeSSHPublic(line []byte) (n, e *big.Int, err error) {
	if wire, ok := extractWirePayload(line); ok {
		if _, ferr := splitWireFields(wire); ferr != nil {
			return nil, nil, ferr
		}
	}

	sshPub, _, _, _, perr := ssh.ParseAuthorizedKey(line)
	if perr != nil {
		return nil, nil, fmt.Errorf("keycodec: parsing SSH public key line: %w: %v", rsaerr.KeyFormatError, perr)
	}
	if sshPub.Type() != ssh.KeyAlgoRSA {
		return nil, nil, fmt.Errorf("keycodec: SSH key algorithm %q, want %q: %w", sshPub.Type(), ssh.KeyAlgoRSA, rsaerr.KeyFormatError)
	}

	cryptoPub, ok := sshPub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, nil, fmt.Errorf("keycodec: SSH key does not expose its crypto.PublicKey: %w", rsaerr.KeyFormatError)
	}
	rsaPub, ok := cryptoPub.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, nil, fmt.Errorf("keycodec: SSH key is not an RSA key: %w", rsaerr.KeyFormatError)
	}

	return rsaPub.N, big.NewInt(int64(rsaPub.E)), nil
}

// extractWirePayload pulls the base64 field out of an authorized_keys-style
// "algo base64 comment" line and decodes it, matching the second field the
// ssh package itself expects.
func extractWirePayload(line []byte) ([]byte, bool) {
	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return nil, false
	}
	wire, err := base64.StdEncoding.DecodeString(string(fields[1]))
	if err != nil {
		return nil, false
	}
	return wire, true
}

// splitWireFields is a defensive re-parse of the raw SSH wire format used
// only to confirm the field count the spec calls out: algorithm name,
// public exponent, modulus. DecodeSSHPublic above does the real parsing via
// golang.org/x/crypto/ssh; this exists to catch a malformed field count
// before it's silently accepted.
func splitWireFields(wire []byte) ([][]byte, error) {
	var fields [][]byte
	for len(wire) > 0 {
		if len(wire) < 4 {
			return nil, fmt.Errorf("keycodec: truncated length prefix: %w", rsaerr.KeyFormatError)
		}
		n := int(wire[0])<<24 | int(wire[1])<<16 | int(wire[2])<<8 | int(wire[3])
		wire = wire[4:]
		if n < 0 || n > len(wire) {
			return nil, fmt.Errorf("keycodec: field length %d exceeds remaining data: %w", n, rsaerr.KeyFormatError)
		}
		fields = append(fields, wire[:n])
		wire = wire[n:]
	}
	if len(fields) != 3 {
		return nil, fmt.Errorf("keycodec: SSH public key has %d fields, want 3: %w", len(fields), rsaerr.KeyFormatError)
	}
	return fields, nil
}
