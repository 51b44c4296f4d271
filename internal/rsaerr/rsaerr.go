// Package rsaerr defines the error kinds every workflow terminates with
// (spec.md §7): ConfigError, KeyFormatError, EnvelopeError, CryptoError and
// IOError. Each is a sentinel usable with errors.Is, and callers wrap it
// with fmt.Errorf("...: %w", rsaerr.KeyFormatError) the way the teacher
// wraps plain stdlib errors throughout src/cmd and src/operations.
package rsaerr

import "errors"

var (
	// ConfigError marks bad CLI input: unrecognized numbits or a
	// non-hex/decimal integer.
	ConfigError = errors.New("config error")

	// KeyFormatError marks armor mismatches, DER structure mismatches, an SSH
	// field count other than three, or an unsupported algorithm tag.
	KeyFormatError = errors.New("key format error")

	// EnvelopeError marks a bad magic, an unsupported envelope version, or a
	// ciphertext length that isn't a multiple of the block width.
	EnvelopeError = errors.New("envelope error")

	// CryptoError marks gcd(e, phi) != 1 during derive, or chosen primes that
	// fail gcd(p, q) = 1.
	CryptoError = errors.New("crypto error")

	// IOError marks filesystem failures surfaced from the host.
	IOError = errors.New("io error")
)
