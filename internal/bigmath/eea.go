// Package bigmath holds the small set of arbitrary-precision helpers the RSA
// parameter derivation needs beyond what math/big provides directly.
package bigmath

import "math/big"

// ExtendedGCD returns (g, x, y) such that a*x + b*y = g = gcd(a, b), using
// the canonical iterative two-row update. Both a and b must be non-negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, curR := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, curS := big.NewInt(1), big.NewInt(0)
	oldT, curT := big.NewInt(0), big.NewInt(1)

	for curR.Sign() != 0 {
		q := new(big.Int).Div(oldR, curR)

		oldR, curR = curR, new(big.Int).Sub(oldR, new(big.Int).Mul(q, curR))
		oldS, curS = curS, new(big.Int).Sub(oldS, new(big.Int).Mul(q, curS))
		oldT, curT = curT, new(big.Int).Sub(oldT, new(big.Int).Mul(q, curT))
	}

	return oldR, oldS, oldT
}
