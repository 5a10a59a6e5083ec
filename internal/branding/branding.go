// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit that one file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	PackageName  string `yaml:"package_name"`
	CommandScope string `yaml:"command_scope"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:      "stencil",
			DisplayName:  "Stencil",
			Description:  "Scaffold projects from versioned templates",
			HomeDir:      ".stencil",
			EnvPrefix:    "STENCIL",
			GoModule:     "github.com/stencil-labs/stencil",
			PackageName:  "@stencil-cli/core",
			CommandScope: "@stencil-cli",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "stencil").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".stencil").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "STENCIL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PackageName returns the registry name the CLI itself is published under.
// The startup update check compares the running build against it.
func PackageName() string { load(); return defaults.PackageName }

// CommandPackage returns the registry name of a dispatched command package,
// e.g. CommandPackage("init") → "@stencil-cli/init".
func CommandPackage(command string) string {
	load()
	return defaults.CommandScope + "/" + command
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("home") → "STENCIL_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
