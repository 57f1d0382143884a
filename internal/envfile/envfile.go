// Package envfile loads environment variables from .env files.
// Variables already set to a non-empty value in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables not already in the environment.
// Returns nil if the file doesn't exist. Returns an error for read or parse failures.
func Load(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range values {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// LoadAll loads each file in order. The first file to define a variable wins.
// Stops at the first file that exists but cannot be parsed.
func LoadAll(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := Load(path); err != nil {
			return err
		}
	}
	return nil
}
