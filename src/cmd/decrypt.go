package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/jlinoff/rsa-demo/internal/workflow"
)

// DecryptCommand handles the decrypt subcommand.
func DecryptCommand(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)

	var (
		inputFile  = fs.String("input", "", "Encrypted input file (default: stdin)")
		keyFile    = fs.String("key", "", "Private key file, PKCS#1 PEM format (required)")
		outputFile = fs.String("output", "", "Decrypted output file (default: stdout)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s decrypt --key FILE [--input FILE] [--output FILE]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nDecrypt a file (or stdin) with an RSA private key\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s decrypt --key test01 --input ciphertext --output plaintext\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *keyFile == "" {
		fs.Usage()
		return fmt.Errorf("--key is required")
	}

	keyData, err := readFile(*keyFile)
	if err != nil {
		return fmt.Errorf("failed to read key file: %v", err)
	}

	ciphertext, err := readInput(*inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input: %v", err)
	}

	res, err := workflow.RunDecrypt(workflow.DecryptConfig{
		PrivateKey: keyData,
		Ciphertext: ciphertext,
	})
	if err != nil {
		return fmt.Errorf("failed to decrypt: %v", err)
	}

	if err := writeOutput(*outputFile, res.Plaintext); err != nil {
		return fmt.Errorf("failed to write output: %v", err)
	}

	return nil
}
