// Package pkgcache manages one registry package on local disk. In cached
// mode every installed version lives under a store directory keyed by
// pathname.CacheKey; in direct mode a single target directory is used as-is.
// A Package resolves the symbolic "latest" version once, decides between
// install and update, and locates the package's entry point.
package pkgcache
