package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = "update-check.json"
	// DefaultCacheMaxAge is how long a registry answer is trusted.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache is the persisted result of the last registry check.
// LatestVersion is empty when nothing newer was published.
type VersionCache struct {
	Package        string    `json:"package"`
	CurrentVersion string    `json:"current_version"`
	LatestVersion  string    `json:"latest_version,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// LoadCache reads the cache from dir. A missing file yields nil, nil.
func LoadCache(dir string) (*VersionCache, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading update cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing update cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes cache into dir, creating dir if needed.
func SaveCache(dir string, cache *VersionCache) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling update cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0644); err != nil {
		return fmt.Errorf("writing update cache: %w", err)
	}
	return nil
}

// ValidFor reports whether c was recorded for this package and version. An
// upgraded CLI must not trust an answer computed for its predecessor.
func (c *VersionCache) ValidFor(pkg, current string) bool {
	return c != nil && c.Package == pkg && c.CurrentVersion == current
}

// StaleAt reports whether c is nil or older than maxAge at now.
func (c *VersionCache) StaleAt(now time.Time, maxAge time.Duration) bool {
	if c == nil {
		return true
	}
	return now.Sub(c.CheckedAt) > maxAge
}

// Notice returns the update described by c, or nil.
func (c *VersionCache) Notice() *Notice {
	if c == nil || c.LatestVersion == "" {
		return nil
	}
	if newer, err := IsUpdateAvailable(c.CurrentVersion, c.LatestVersion); err != nil || !newer {
		return nil
	}
	return &Notice{Package: c.Package, Current: c.CurrentVersion, Latest: c.LatestVersion}
}
