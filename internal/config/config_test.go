package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// withHome isolates the global Viper instance and the config file location.
func withHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("HOME does not move the user home on windows")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestLoad_MissingFile(t *testing.T) {
	home := withHome(t)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := filepath.Join(home, ".stencil"); s.CacheHome != want {
		t.Errorf("CacheHome = %q, want %q", s.CacheHome, want)
	}
	if s.NetworkTimeout != DefaultNetworkTimeout {
		t.Errorf("NetworkTimeout = %v, want %v", s.NetworkTimeout, DefaultNetworkTimeout)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	home := withHome(t)
	writeConfig(t, home, "registry: http://file.example\nexec_timeout: 2m\n")
	t.Setenv("STENCIL_LOG_LEVEL", "warn")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Registry != "http://file.example" {
		t.Errorf("Registry = %q", s.Registry)
	}
	if s.ExecTimeout != 2*time.Minute {
		t.Errorf("ExecTimeout = %v, want 2m", s.ExecTimeout)
	}
	if s.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", s.LogLevel)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	home := withHome(t)
	writeConfig(t, home, "registry: [unterminated\n")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
}

func TestSet_PersistsTypedValues(t *testing.T) {
	withHome(t)
	if _, err := Load(); err != nil {
		t.Fatal(err)
	}

	if err := Set(KeyNetworkTimeout, "90s"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := Set(KeyInstallDeps, "false"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	viper.Reset()
	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.NetworkTimeout != 90*time.Second {
		t.Errorf("NetworkTimeout = %v, want 90s", s.NetworkTimeout)
	}
	if s.InstallDeps {
		t.Error("install_deps was not persisted as false")
	}
}

func TestSet_Rejects(t *testing.T) {
	withHome(t)

	tests := []struct {
		key, value string
	}{
		{KeyNetworkTimeout, "soon"},
		{KeyExecTimeout, "-5s"},
		{KeyUseOfficialRegistry, "maybe"},
	}
	for _, tt := range tests {
		if err := Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%s, %s) expected error", tt.key, tt.value)
		}
	}

	err := Set("colour", "blue")
	var unknown *UnknownKeyError
	if !errors.As(err, &unknown) || unknown.Key != "colour" {
		t.Errorf("Set(colour) error = %v, want *UnknownKeyError", err)
	}
	if _, statErr := os.Stat(FilePath()); !os.IsNotExist(statErr) {
		t.Error("rejected values must not create the config file")
	}
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".stencil")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
