// Package config manages user-level settings stored at ~/.stencil/config.yaml.
// It loads them through Viper (config file, STENCIL_* environment variables and
// bound CLI flags) and exposes the resolved values as a Settings struct that is
// threaded explicitly into the dispatcher.
package config
