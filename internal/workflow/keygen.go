// Package workflow orchestrates the three end-to-end operations the CLI
// exposes: keygen, encrypt, decrypt. Each gets its own config struct and a
// single entry function, mirroring the teacher's
// src/operations/{encrypt,decrypt}.go split between an Options struct, a
// Result struct, and one pipeline function per operation.
package workflow

import (
	"fmt"
	"io"

	"github.com/jlinoff/rsa-demo/internal/cliutil"
	"github.com/jlinoff/rsa-demo/internal/keycodec"
	"github.com/jlinoff/rsa-demo/internal/primegen"
	"github.com/jlinoff/rsa-demo/internal/rngsrc"
	"github.com/jlinoff/rsa-demo/internal/rsaerr"
	"github.com/jlinoff/rsa-demo/internal/rsakey"

	"math/big"
)

// KeygenConfig carries every parameter the keygen workflow needs.
type KeygenConfig struct {
	NumBits      int // requested modulus bit width; each prime is NumBits/2 bits.
	Rounds       int // Miller-Rabin rounds per candidate.
	Retry        primegen.RetryPolicy
	ExponentHint *big.Int // nil means draw a random exponent.
	P, Q         *big.Int // caller-supplied primes; both must be set together to skip generation.
	Seed         *int64   // nil means use the secure RNG.
	OutputBase   string   // output files are OutputBase, OutputBase+".pub.pem", OutputBase+".pub".
	Comment      string   // SSH public key comment.
	Verbose      bool
}

// KeygenResult reports what the workflow produced, for the CLI to print a
// summary the way the teacher's cmd layer does.
type KeygenResult struct {
	PrivatePath   string
	PublicPEMPath string
	PublicSSHPath string
	Factors       *rsakey.Factors
}

// FileWriter abstracts the host filesystem write the workflow performs, so
// tests can swap in an in-memory collector instead of touching disk
// (spec.md's explicit "file I/O choreography is an external collaborator"
// boundary).
type FileWriter func(path string, data []byte) error

// RunKeygen draws two primes, derives the full RSAFactors bundle, and writes
// the three key files.
func RunKeygen(cfg KeygenConfig, write FileWriter) (*KeygenResult, error) {
	if cfg.NumBits < 8 {
		return nil, fmt.Errorf("workflow: numbits must be >= 8, got %d: %w", cfg.NumBits, rsaerr.ConfigError)
	}
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("workflow: rounds must be > 0, got %d: %w", cfg.Rounds, rsaerr.ConfigError)
	}

	src := rngSource(cfg.Seed)

	var p, q *big.Int
	if cfg.P != nil && cfg.Q != nil {
		p, q = cfg.P, cfg.Q
	} else {
		progress := cliutil.NewDotPrinter(cfg.Verbose, "keygen")
		tick := func(attempt int, candidate *big.Int) { progress.Tick() }

		primeBits := cfg.NumBits / 2
		var err error
		p, err = primegen.Generate(src, primeBits, cfg.Rounds, cfg.Retry, tick)
		if err != nil {
			return nil, fmt.Errorf("workflow: generating p: %w", err)
		}
		q, err = primegen.Generate(src, primeBits, cfg.Rounds, cfg.Retry, tick)
		if err != nil {
			return nil, fmt.Errorf("workflow: generating q: %w", err)
		}
		progress.Finish()
	}

	factors, err := rsakey.Derive(p, q, cfg.ExponentHint, src)
	if err != nil {
		return nil, fmt.Errorf("workflow: deriving key: %w", err)
	}

	privatePEM, err := keycodec.EncodePrivatePEM(factors)
	if err != nil {
		return nil, fmt.Errorf("workflow: encoding private key: %w", err)
	}
	publicPEM, err := keycodec.EncodePublicPEM(factors.N, factors.E)
	if err != nil {
		return nil, fmt.Errorf("workflow: encoding public PEM key: %w", err)
	}
	publicSSH, err := keycodec.EncodeSSHPublic(factors.N, factors.E, cfg.Comment)
	if err != nil {
		return nil, fmt.Errorf("workflow: encoding SSH public key: %w", err)
	}

	privatePath := cfg.OutputBase
	publicPEMPath := cfg.OutputBase + ".pub.pem"
	publicSSHPath := cfg.OutputBase + ".pub"

	if err := write(privatePath, privatePEM); err != nil {
		return nil, fmt.Errorf("workflow: writing private key: %w: %v", rsaerr.IOError, err)
	}
	if err := write(publicPEMPath, publicPEM); err != nil {
		return nil, fmt.Errorf("workflow: writing public PEM key: %w: %v", rsaerr.IOError, err)
	}
	if err := write(publicSSHPath, publicSSH); err != nil {
		return nil, fmt.Errorf("workflow: writing SSH public key: %w: %v", rsaerr.IOError, err)
	}

	return &KeygenResult{
		PrivatePath:   privatePath,
		PublicPEMPath: publicPEMPath,
		PublicSSHPath: publicSSHPath,
		Factors:       factors,
	}, nil
}

// rngSource returns the secure RNG unless seed is non-nil, in which case it
// returns a deterministic, repeatable stream for demos and tests.
func rngSource(seed *int64) io.Reader {
	if seed == nil {
		return rngsrc.Secure()
	}
	return rngsrc.Seeded(*seed)
}
