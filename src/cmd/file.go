package cmd

import (
	"io"
	"os"
)

// readFile and writeFile are the thin filesystem wrappers every subcommand
// uses; they exist as free functions rather than a package so callers stay
// one import shallower, the way the teacher's src/utils.ReadFile/WriteFile
// did before the surrounding package grew puzzle-specific responsibilities.
func readFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

func writeFile(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0644)
}

// readInput reads from path, or from stdin if path is empty.
func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return readFile(path)
}

// writeOutput writes to path, or to stdout if path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return writeFile(path, data)
}
