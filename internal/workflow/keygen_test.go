package workflow

import (
	"testing"

	"github.com/jlinoff/rsa-demo/internal/primegen"
)

func TestRunKeygenWritesThreeFiles(t *testing.T) {
	seed := int64(101)
	written := map[string][]byte{}
	write := func(path string, data []byte) error {
		written[path] = data
		return nil
	}

	cfg := KeygenConfig{
		NumBits:    256,
		Rounds:     20,
		Retry:      primegen.Step,
		Seed:       &seed,
		OutputBase: "testkey",
		Comment:    "tester@example",
	}

	res, err := RunKeygen(cfg, write)
	if err != nil {
		t.Fatalf("RunKeygen: %v", err)
	}

	for _, path := range []string{"testkey", "testkey.pub.pem", "testkey.pub"} {
		if _, ok := written[path]; !ok {
			t.Fatalf("expected file %q to be written", path)
		}
	}
	if res.Factors.N.BitLen() < 250 {
		t.Fatalf("modulus bit length %d too small for two 128-bit primes", res.Factors.N.BitLen())
	}
}

func TestRunKeygenRejectsBadConfig(t *testing.T) {
	write := func(path string, data []byte) error { return nil }
	if _, err := RunKeygen(KeygenConfig{NumBits: 4, Rounds: 20, OutputBase: "x"}, write); err == nil {
		t.Fatalf("RunKeygen accepted numbits below the minimum")
	}
	if _, err := RunKeygen(KeygenConfig{NumBits: 256, Rounds: 0, OutputBase: "x"}, write); err == nil {
		t.Fatalf("RunKeygen accepted zero rounds")
	}
}

func TestRunKeygenPropagatesWriteFailure(t *testing.T) {
	seed := int64(7)
	boom := "disk full"
	write := func(path string, data []byte) error {
		return errBoom(boom)
	}
	if _, err := RunKeygen(KeygenConfig{NumBits: 256, Rounds: 20, Seed: &seed, OutputBase: "x"}, write); err == nil {
		t.Fatalf("RunKeygen ignored a write failure")
	}
}

type errBoom string

func (e errBoom) Error() string { return string(e) }
