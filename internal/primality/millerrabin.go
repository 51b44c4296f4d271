// Package primality implements the Miller-Rabin probabilistic primality
// test used to validate prime candidates produced by internal/primegen.
package primality

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
	five  = big.NewInt(5)
	seven = big.NewInt(7)
	one   = big.NewInt(1)
)

// IsProbablePrime reports whether candidate is prime with error probability
// at most 4^-rounds. A prime candidate is never reported composite, except
// that IsProbablePrime also returns false when drawing a witness from src
// fails. Witnesses are drawn from src, so callers decide whether the
// test runs against a secure or a seeded deterministic source.
func IsProbablePrime(candidate *big.Int, rounds int, src io.Reader) bool {
	switch {
	case candidate.Cmp(two) == 0, candidate.Cmp(three) == 0, candidate.Cmp(five) == 0, candidate.Cmp(seven) == 0:
		return true
	case candidate.Cmp(two) < 0:
		return false
	case candidate.Bit(0) == 0:
		return false
	}

	// Decompose candidate-1 = 2^s * d with d odd.
	nMinus1 := new(big.Int).Sub(candidate, one)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	nMinus2 := new(big.Int).Sub(candidate, two)

	for i := 0; i < rounds; i++ {
		a, err := randomWitness(src, nMinus2)
		if err != nil {
			// A broken randomness source cannot certify primality.
			return false
		}

		if !passesRound(a, d, s, candidate, nMinus1) {
			return false
		}
	}
	return true
}

// passesRound runs one Miller-Rabin witness check and reports whether
// candidate survives it (true means "probably prime w.r.t. this witness").
func passesRound(a, d *big.Int, s int, candidate, nMinus1 *big.Int) bool {
	x := new(big.Int).Exp(a, d, candidate)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}

	for r := 0; r < s-1; r++ {
		x.Exp(x, two, candidate)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
		if x.Cmp(one) == 0 {
			return false
		}
	}
	return false
}

// randomWitness draws a uniform witness a in [2, nMinus2].
func randomWitness(src io.Reader, nMinus2 *big.Int) (*big.Int, error) {
	// nMinus2 here is candidate-2, which is the inclusive upper bound; the
	// witness range [2, candidate-2] has (candidate-3) elements.
	span := new(big.Int).Sub(nMinus2, two)
	span.Add(span, one)

	a, err := cryptorand.Int(src, span)
	if err != nil {
		return nil, err
	}
	a.Add(a, two)
	return a, nil
}
