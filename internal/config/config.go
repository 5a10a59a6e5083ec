package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"github.com/stencil-labs/stencil/internal/branding"
)

// config.yaml always lives in the default home, even when cache_home
// moves the cache elsewhere.
const fileName = "config.yaml"

// Dir returns the directory holding config.yaml (~/.stencil/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return branding.HomeDir()
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the location of config.yaml.
func FilePath() string {
	return filepath.Join(Dir(), fileName)
}

// Load points the global Viper instance at config.yaml and STENCIL_*
// variables, registers the defaults and returns the resolved Settings.
// A missing config file is not an error; a malformed one is.
func Load() (Settings, error) {
	v := viper.GetViper()
	v.SetConfigFile(FilePath())
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return FromViper(v), fmt.Errorf("reading %s: %w", FilePath(), err)
	}
	return FromViper(v), nil
}

// Get returns the effective value of key, from flags, environment, file or
// defaults in that order.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates value for key and persists it to config.yaml.
func Set(key, value string) error {
	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", Dir(), err)
	}
	viper.Set(key, typed)
	if err := viper.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// parseValue converts the textual value of key to the type Settings reads
// it as, so bad values are rejected at write time.
func parseValue(key, value string) (any, error) {
	switch key {
	case KeyUseOfficialRegistry, KeyInstallDeps:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return b, nil
	case KeyNetworkTimeout, KeyExecTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%s must be a duration such as 30s, got %q", key, value)
		}
		return d.String(), nil
	case KeyTargetPath, KeyCacheHome, KeyRegistry, KeyLogLevel:
		return value, nil
	}
	return nil, &UnknownKeyError{Key: key}
}

// UnknownKeyError is returned when setting a key Settings does not read.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q", e.Key)
}
