// Package updater tells users when a newer release of the CLI's own package
// is published on the registry. Results are cached for a day so the
// registry is queried at most once per day, and the banner is printed from
// the cache.
package updater
