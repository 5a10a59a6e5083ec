// Package npm queries an npm-compatible package registry for package
// metadata: published versions, the latest version under semver ordering,
// and per-version distribution info used by the installer.
package npm
