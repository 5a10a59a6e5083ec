package userdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvFileName is the dotenv file read from the user's home directory.
const EnvFileName = ".env"

// ErrNoUserHome is returned when the home directory is unknown or missing.
var ErrNoUserHome = errors.New("current user has no home directory")

// Home returns the user's home directory.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// CheckUserHome verifies that the home directory exists, since every
// cached package lives below it.
func CheckUserHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoUserHome
	}
	info, err := os.Stat(home)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNoUserHome, home)
	}
	return home, nil
}

// EnvFilePath returns the path of ~/.env.
func EnvFilePath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, EnvFileName), nil
}
