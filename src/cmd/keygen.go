package cmd

import (
	"flag"
	"fmt"
	"os"
	"os/user"

	"github.com/jlinoff/rsa-demo/internal/cliutil"
	"github.com/jlinoff/rsa-demo/internal/primegen"
	"github.com/jlinoff/rsa-demo/internal/workflow"
)

// KeygenCommand handles the keygen subcommand.
func KeygenCommand(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)

	var (
		numBits = fs.Int("numbits", 2048, "Modulus bit width; each prime is numbits/2 bits")
		eArg    = fs.String("e", "0x10001", "Public exponent, decimal or 0x-prefixed hex")
		pArg    = fs.String("p", "", "Override prime p (requires -q); decimal or 0x-prefixed hex")
		qArg    = fs.String("q", "", "Override prime q (requires -p); decimal or 0x-prefixed hex")
		rounds  = fs.Int("rounds", 40, "Miller-Rabin rounds per candidate")
		redraw  = fs.Bool("redraw", false, "Redraw a fresh candidate on primality failure instead of stepping by 2")
		seed    = fs.Int64("seed", 0, "Deterministic RNG seed (0 disables seeding and uses the secure RNG)")
		out     = fs.String("out", "", "Output key file prefix (required)")
		comment = fs.String("comment", "", "SSH public key comment (default: user@host)")
		verbose = fs.Bool("verbose", false, "Print progress dots while searching for primes")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s keygen --out PREFIX [OPTIONS]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nGenerate an RSA keypair and write it under three files\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s keygen --out test01\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s keygen --out test01 --numbits 1024 --seed 42\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		fs.Usage()
		return fmt.Errorf("--out is required")
	}

	e, err := cliutil.ParseBigInt(*eArg)
	if err != nil {
		return fmt.Errorf("failed to parse -e: %v", err)
	}

	cfg := workflow.KeygenConfig{
		NumBits:      *numBits,
		Rounds:       *rounds,
		ExponentHint: e,
		OutputBase:   *out,
		Comment:      *comment,
		Verbose:      *verbose,
	}
	if *redraw {
		cfg.Retry = primegen.Redraw
	} else {
		cfg.Retry = primegen.Step
	}
	if *seed != 0 {
		cfg.Seed = seed
	}

	if (*pArg == "") != (*qArg == "") {
		return fmt.Errorf("-p and -q must be supplied together")
	}
	if *pArg != "" {
		p, perr := cliutil.ParseBigInt(*pArg)
		if perr != nil {
			return fmt.Errorf("failed to parse -p: %v", perr)
		}
		q, qerr := cliutil.ParseBigInt(*qArg)
		if qerr != nil {
			return fmt.Errorf("failed to parse -q: %v", qerr)
		}
		cfg.P, cfg.Q = p, q
	}

	if cfg.Comment == "" {
		cfg.Comment = defaultComment()
	}

	fmt.Printf("Generating RSA key (numbits: %d)...\n", *numBits)
	res, err := workflow.RunKeygen(cfg, writeFile)
	if err != nil {
		return fmt.Errorf("failed to generate key: %v", err)
	}

	fmt.Printf("Keygen complete!\n")
	fmt.Printf("Private key: %s\n", res.PrivatePath)
	fmt.Printf("Public key (PEM): %s\n", res.PublicPEMPath)
	fmt.Printf("Public key (SSH): %s\n", res.PublicSSHPath)
	fmt.Printf("Modulus bit length: %d\n", res.Factors.N.BitLen())
	fmt.Printf("Public exponent: %s\n", res.Factors.E)

	return nil
}

// defaultComment mirrors the "user@host" comment the teacher's original
// source builds for SSH public keys when none is supplied explicitly.
func defaultComment() string {
	host, herr := os.Hostname()
	if herr != nil {
		host = "localhost"
	}
	u, uerr := user.Current()
	name := "user"
	if uerr == nil {
		name = u.Username
	}
	return name + "@" + host
}
