package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// If the file does not exist, it silently returns nil (not an error).
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}

// MustLoadDotEnv loads environment variables from a .env file.
// Unlike LoadDotEnv, it returns an error if the file does not exist.
func MustLoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	return godotenv.Load(path)
}
