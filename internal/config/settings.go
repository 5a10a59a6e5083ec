package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/stencil-labs/stencil/internal/branding"
)

// Keys recognised in config.yaml and as STENCIL_<KEY> environment variables.
const (
	KeyTargetPath          = "target_path"
	KeyCacheHome           = "cache_home"
	KeyRegistry            = "registry"
	KeyUseOfficialRegistry = "use_official_registry"
	KeyNetworkTimeout      = "network_timeout"
	KeyExecTimeout         = "exec_timeout"
	KeyLogLevel            = "log_level"
	KeyInstallDeps         = "install_deps"
)

// Keys returns every recognised configuration key.
func Keys() []string {
	return []string{
		KeyTargetPath,
		KeyCacheHome,
		KeyRegistry,
		KeyUseOfficialRegistry,
		KeyNetworkTimeout,
		KeyExecTimeout,
		KeyLogLevel,
		KeyInstallDeps,
	}
}

// IsKey reports whether key is a recognised configuration key.
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

const (
	dependenciesDir = "dependencies"
	storeDir        = "node_modules"

	// DefaultNetworkTimeout bounds every registry query and package install.
	DefaultNetworkTimeout = 60 * time.Second
)

// Settings is the resolved configuration of one CLI process.
type Settings struct {
	// TargetPath switches dispatch to direct mode: the package at this path
	// is executed as-is, with no versioned caching.
	TargetPath string
	// CacheHome is the root of everything the CLI writes (~/.stencil).
	CacheHome string
	// Registry overrides the registry base URL.
	Registry            string
	UseOfficialRegistry bool
	NetworkTimeout      time.Duration
	// ExecTimeout bounds the dispatched child process. Zero means no limit.
	ExecTimeout time.Duration
	LogLevel    string
	InstallDeps bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCacheHome, branding.HomeDir())
	v.SetDefault(KeyUseOfficialRegistry, true)
	v.SetDefault(KeyNetworkTimeout, DefaultNetworkTimeout)
	v.SetDefault(KeyExecTimeout, time.Duration(0))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyInstallDeps, true)
}

// FromViper reads Settings from v. A relative cache_home is anchored at the
// user's home directory.
func FromViper(v *viper.Viper) Settings {
	return Settings{
		TargetPath:          v.GetString(KeyTargetPath),
		CacheHome:           resolveCacheHome(v.GetString(KeyCacheHome)),
		Registry:            v.GetString(KeyRegistry),
		UseOfficialRegistry: v.GetBool(KeyUseOfficialRegistry),
		NetworkTimeout:      v.GetDuration(KeyNetworkTimeout),
		ExecTimeout:         v.GetDuration(KeyExecTimeout),
		LogLevel:            v.GetString(KeyLogLevel),
		InstallDeps:         v.GetBool(KeyInstallDeps),
	}
}

func resolveCacheHome(p string) string {
	if p == "" {
		p = branding.HomeDir()
	}
	if filepath.IsAbs(p) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", p)
	}
	return filepath.Join(home, p)
}

// Direct reports whether dispatch runs in direct mode.
func (s Settings) Direct() bool {
	return s.TargetPath != ""
}

// DependenciesDir is the target path used in cached mode.
func (s Settings) DependenciesDir() string {
	return filepath.Join(s.CacheHome, dependenciesDir)
}

// StoreDir holds every cached package installation.
func (s Settings) StoreDir() string {
	return filepath.Join(s.DependenciesDir(), storeDir)
}

// UpdateCheckDir is where the daily self-update check caches its result.
func (s Settings) UpdateCheckDir() string {
	return s.CacheHome
}
