package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/jlinoff/rsa-demo/internal/workflow"
)

// EncryptCommand handles the encrypt subcommand.
func EncryptCommand(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)

	var (
		inputFile  = fs.String("input", "", "Input file to encrypt (default: stdin)")
		keyFile    = fs.String("key", "", "Public key file, PEM or SSH format (required)")
		outputFile = fs.String("output", "", "Encrypted output file (default: stdout)")
		binary     = fs.Bool("binary", false, "Write the raw envelope instead of base64 PEM-style armor")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s encrypt --key FILE [--input FILE] [--output FILE] [--binary]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEncrypt a file (or stdin) with an RSA public key\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s encrypt --key test01.pub.pem --input plaintext --output ciphertext\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s encrypt --key test01.pub --input plaintext --output ciphertext --binary\n", os.Args[0])
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

	plaintext, err := readInput(*inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input: %v", err)
	}

	res, err := workflow.RunEncrypt(workflow.EncryptConfig{
		PublicKey: keyData,
		Plaintext: plaintext,
		Binary:    *binary,
	})
	if err != nil {
		return fmt.Errorf("failed to encrypt: %v", err)
	}

	if err := writeOutput(*outputFile, res.Output); err != nil {
		return fmt.Errorf("failed to write output: %v", err)
	}

	return nil
}
