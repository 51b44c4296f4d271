// Package primegen samples random prime candidates of a requested bit width
// and advances them with one of two retry policies until the
// internal/primality tester accepts one.
package primegen

import (
	"fmt"
	"io"
	"math/big"

	"github.com/jlinoff/rsa-demo/internal/primality"
)

// RetryPolicy selects how the next candidate is chosen after a failed
// primality test.
type RetryPolicy int

const (
	// Step advances the candidate by 2, staying odd, per the prime number
	// theorem's O(nbits) expected-trials guarantee.
	Step RetryPolicy = iota
	// Redraw samples an entirely fresh candidate on every failure.
	Redraw
)

// CandidateFunc reports progress to a caller (e.g. the CLI's verbose dot
// printer) once per attempted candidate; it may be nil.
type CandidateFunc func(attempt int, candidate *big.Int)

// Candidate draws a single nbits-bit candidate from src with the top and
// bottom bits forced to 1, guaranteeing full width and oddness.
func Candidate(src io.Reader, nbits int) (*big.Int, error) {
	if nbits < 2 {
		return nil, fmt.Errorf("primegen: nbits must be >= 2, got %d", nbits)
	}

	byteLen := (nbits + 7) / 8
	buf := make([]byte, byteLen)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, fmt.Errorf("primegen: reading random bits: %w", err)
	}

	c := new(big.Int).SetBytes(buf)

	// Trim down to exactly nbits, then force bit nbits-1 (top) and bit 0
	// (bottom, oddness).
	excess := byteLen*8 - nbits
	c.Rsh(c, uint(excess))
	c.SetBit(c, nbits-1, 1)
	c.SetBit(c, 0, 1)
	return c, nil
}

// Generate draws nbits-bit prime candidates from src, testing each with
// rounds Miller-Rabin iterations, until one passes. progress, if non-nil, is
// invoked once per candidate attempted.
func Generate(src io.Reader, nbits, rounds int, retry RetryPolicy, progress CandidateFunc) (*big.Int, error) {
	candidate, err := Candidate(src, nbits)
	if err != nil {
		return nil, err
	}

	attempt := 1
	for {
		if progress != nil {
			progress(attempt, candidate)
		}
		if primality.IsProbablePrime(candidate, rounds, src) {
			return candidate, nil
		}

		switch retry {
		case Step:
			candidate = new(big.Int).Add(candidate, big.NewInt(2))
		case Redraw:
			candidate, err = Candidate(src, nbits)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("primegen: unknown retry policy %d", retry)
		}
		attempt++
	}
}
