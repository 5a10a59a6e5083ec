package userdata

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// EnvEntry represents a single key-value pair from a .env file.
type EnvEntry struct {
	Key   string
	Value string
}

// ParseEnvFile reads a .env file. Blank lines, comments and lines without
// "=" are skipped. An optional "export " prefix is accepted and matching
// surrounding quotes are removed from values.
func ParseEnvFile(path string) ([]EnvEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	var entries []EnvEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		entries = append(entries, EnvEntry{Key: key, Value: unquote(strings.TrimSpace(value))})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return entries, nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// LoadEnvFile sets every variable from path that is not already set in the
// environment. A missing file is not an error. It returns the keys it set.
func LoadEnvFile(path string) ([]string, error) {
	entries, err := ParseEnvFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var set []string
	for _, e := range entries {
		if _, exists := os.LookupEnv(e.Key); exists {
			continue
		}
		if err := os.Setenv(e.Key, e.Value); err != nil {
			return set, fmt.Errorf("setting %s: %w", e.Key, err)
		}
		log.WithField(e.Key, RedactValue(e.Key, e.Value)).Debug("loaded from env file")
		set = append(set, e.Key)
	}
	return set, nil
}

// LoadDotEnv loads ~/.env.
func LoadDotEnv() ([]string, error) {
	path, err := EnvFilePath()
	if err != nil {
		return nil, err
	}
	return LoadEnvFile(path)
}

// sensitivePatterns are substrings that indicate a value should be redacted.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL"}

// RedactValue hides values of keys that look sensitive. Values of four or
// more characters keep their first four; shorter ones become "***".
func RedactValue(key, value string) string {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			if len(value) >= 4 {
				return value[:4] + "***"
			}
			return "***"
		}
	}
	return value
}
