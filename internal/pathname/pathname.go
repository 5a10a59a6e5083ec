// Package pathname maps a (package name, version) pair to its location in
// the package store. Every function here is pure.
package pathname

import (
	"path/filepath"
	"strings"
)

// CacheKey returns the store directory name for name@version:
//
//	_<name with "/" replaced by "_">@<version>@<name>
//
// The trailing original name keeps scoped and unscoped packages with the
// same flattened prefix apart. Names always use "/" as their scope
// separator, so the key does not depend on the host OS.
func CacheKey(name, version string) string {
	return "_" + strings.ReplaceAll(name, "/", "_") + "@" + version + "@" + name
}

// CacheDir returns storeRoot joined with the cache key of name@version.
// A scoped name contributes one extra directory level.
func CacheDir(storeRoot, name, version string) string {
	return filepath.Join(storeRoot, filepath.FromSlash(CacheKey(name, version)))
}

// NormalizePath rewrites the host path separator to "/". It is the identity
// on hosts that already use "/".
func NormalizePath(p string) string {
	return normalize(p, filepath.Separator)
}

func normalize(p string, sep rune) string {
	if sep == '/' {
		return p
	}
	return strings.ReplaceAll(p, string(sep), "/")
}
