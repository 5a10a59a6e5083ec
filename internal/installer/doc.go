// Package installer fetches a published package version from the registry
// into a directory: it downloads the tarball, verifies its integrity, unpacks
// it, and optionally lets npm install the package's own dependencies.
package installer
