package rsakey

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"
)

// randCryptoInt draws a uniform value in [0, max] from src. crypto/rand.Int
// accepts any io.Reader, which is what lets the same call path serve both
// the secure and seeded RNG handles (internal/rngsrc).
func randCryptoInt(src io.Reader, max *big.Int) (*big.Int, error) {
	span := new(big.Int).Add(max, one)
	return cryptorand.Int(src, span)
}
