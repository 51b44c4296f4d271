package main

import (
	"fmt"
	"os"

	"github.com/jlinoff/rsa-demo/src/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "keygen":
		err = cmd.KeygenCommand(args)
	case "encrypt":
		err = cmd.EncryptCommand(args)
	case "decrypt":
		err = cmd.DecryptCommand(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("rsa-demo - textbook RSA keygen/encrypt/decrypt toolkit\n\n")
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s <command> [options]\n\n", os.Args[0])
	fmt.Printf("Commands:\n")
	fmt.Printf("  keygen      Generate an RSA keypair\n")
	fmt.Printf("  encrypt     Encrypt a file with an RSA public key\n")
	fmt.Printf("  decrypt     Decrypt a file with an RSA private key\n")
	fmt.Printf("  help        Show this help message\n\n")
	fmt.Printf("Examples:\n")
	fmt.Printf("  %s keygen --out test01\n", os.Args[0])
	fmt.Printf("  %s encrypt --key test01.pub.pem --input plaintext --output ciphertext\n", os.Args[0])
	fmt.Printf("  %s decrypt --key test01 --input ciphertext --output plaintext\n", os.Args[0])
	fmt.Printf("\nFor detailed help on a command, use:\n")
	fmt.Printf("  %s <command> --help\n", os.Args[0])
}
