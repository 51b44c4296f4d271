package cliutil

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/jlinoff/rsa-demo/internal/rsaerr"
)

// ParseBigInt parses a decimal or 0x-prefixed hex integer flag value, the
// same two bases the toolkit's numeric CLI flags (exponent hints, override
// primes) have always accepted.
func ParseBigInt(arg string) (*big.Int, error) {
	base := 10
	if strings.HasPrefix(arg, "0x") || strings.HasPrefix(arg, "0X") ||
		strings.HasPrefix(arg, "x") || strings.HasPrefix(arg, "X") {
		base = 16
		arg = strings.TrimPrefix(arg, "0x")
		arg = strings.TrimPrefix(arg, "0X")
		arg = strings.TrimPrefix(arg, "x")
		arg = strings.TrimPrefix(arg, "X")
	}

	v, ok := new(big.Int).SetString(arg, base)
	if !ok {
		return nil, fmt.Errorf("cliutil: %q is not a valid base-%d integer: %w", arg, base, rsaerr.ConfigError)
	}
	return v, nil
}
