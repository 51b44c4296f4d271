// Package rsakey derives the full set of RSA parameters from two primes and
// a public exponent hint: the modulus, totient, private exponent, and the
// CRT coefficient and per-prime CRT exponents used for fast decryption.
package rsakey

import (
	"fmt"
	"io"
	"math/big"

	"github.com/jlinoff/rsa-demo/internal/bigmath"
	"github.com/jlinoff/rsa-demo/internal/rsaerr"
)

var (
	three = big.NewInt(3)
	one   = big.NewInt(1)
)

// Factors is the immutable bundle of derived RSA parameters. Every field is
// computed once by Derive and never mutated afterward (spec.md §9's "Record
// bundle" note): it is the Go analogue of the teacher's habit, in
// GeneratePuzzle, of computing every struct field inline in a single
// constructor-shaped function.
type Factors struct {
	Version int // 0: single non-multiprime version supported.

	P, Q *big.Int // the two primes, with the invariant P >= Q.
	N    *big.Int // modulus, P*Q.
	Phi  *big.Int // totient, (P-1)*(Q-1).

	E *big.Int // public exponent.
	D *big.Int // private exponent, e*d = 1 (mod phi).

	Dp *big.Int // d mod (p-1).
	Dq *big.Int // d mod (q-1).

	Qinv *big.Int // modular inverse of q mod p.
}

// Derive computes a Factors bundle from two primes and a public exponent
// hint. If eHint is nil or less than 3, a random exponent coprime to phi is
// drawn from src instead. Derive fails if gcd(p, q) != 1, or if a supplied
// eHint >= 3 is not coprime with phi.
func Derive(p, q, eHint *big.Int, src io.Reader) (*Factors, error) {
	if p.Cmp(q) < 0 {
		p, q = q, p
	}

	if g := new(big.Int).GCD(nil, nil, p, q); g.Cmp(one) != 0 {
		return nil, fmt.Errorf("rsakey: p and q share a factor: %w", rsaerr.CryptoError)
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("rsakey: p and q must be distinct: %w", rsaerr.CryptoError)
	}

	n := new(big.Int).Mul(p, q)
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	phi := new(big.Int).Mul(pMinus1, qMinus1)

	e, err := selectPublicExponent(eHint, phi, src)
	if err != nil {
		return nil, err
	}

	d, err := privateExponent(e, phi)
	if err != nil {
		return nil, err
	}

	dp := new(big.Int).Mod(d, pMinus1)
	dq := new(big.Int).Mod(d, qMinus1)

	qinv, err := modularInverse(q, p)
	if err != nil {
		return nil, err
	}

	return &Factors{
		Version: 0,
		P:       p,
		Q:       q,
		N:       n,
		Phi:     phi,
		E:       e,
		D:       d,
		Dp:      dp,
		Dq:      dq,
		Qinv:    qinv,
	}, nil
}

// selectPublicExponent returns eHint if it is already >= 3 and coprime to
// phi; otherwise it draws a random candidate in [3, phi-1] until one is
// coprime to phi.
func selectPublicExponent(eHint, phi *big.Int, src io.Reader) (*big.Int, error) {
	if eHint != nil && eHint.Cmp(three) >= 0 {
		if g := new(big.Int).GCD(nil, nil, eHint, phi); g.Cmp(one) != 0 {
			return nil, fmt.Errorf("rsakey: supplied exponent not coprime to phi: %w", rsaerr.CryptoError)
		}
		return new(big.Int).Set(eHint), nil
	}

	span := new(big.Int).Sub(phi, one)
	span.Sub(span, three)
	if span.Sign() <= 0 {
		return nil, fmt.Errorf("rsakey: totient too small to draw an exponent: %w", rsaerr.CryptoError)
	}

	for {
		candidate, err := randCryptoInt(src, span)
		if err != nil {
			return nil, fmt.Errorf("rsakey: drawing public exponent: %w", err)
		}
		candidate.Add(candidate, three)
		if g := new(big.Int).GCD(nil, nil, candidate, phi); g.Cmp(one) == 0 {
			return candidate, nil
		}
	}
}

// privateExponent computes d, the unique value in [1, phi) with e*d = 1 (mod
// phi), via the extended Euclidean algorithm.
func privateExponent(e, phi *big.Int) (*big.Int, error) {
	g, _, y := bigmath.ExtendedGCD(phi, e)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("rsakey: gcd(e, phi) = %s, want 1: %w", g, rsaerr.CryptoError)
	}

	d := new(big.Int).Mod(y, phi)
	if d.Sign() < 0 {
		d.Add(d, phi)
	}
	return d, nil
}

// modularInverse returns the unique value in [0, m) with a*inv = 1 (mod m).
func modularInverse(a, m *big.Int) (*big.Int, error) {
	g, x, _ := bigmath.ExtendedGCD(a, m)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("rsakey: gcd = %s, not invertible: %w", g, rsaerr.CryptoError)
	}
	inv := new(big.Int).Mod(x, m)
	if inv.Sign() < 0 {
		inv.Add(inv, m)
	}
	return inv, nil
}
