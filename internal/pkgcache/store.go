package pkgcache

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// MarkerFile is written into a cache dir once its install has completed.
const MarkerFile = ".stencil-complete"

// Entry describes one completed installation in a store.
type Entry struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	InstalledAt time.Time `json:"installed_at"`
	Dir         string    `json:"-"`
}

func writeMarker(dir, name, version string) error {
	data, err := json.MarshalIndent(Entry{Name: name, Version: version, InstalledAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling install marker: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MarkerFile), data, 0644); err != nil {
		return fmt.Errorf("writing install marker: %w", err)
	}
	return nil
}

func isComplete(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil && !info.IsDir()
}

// List returns every completed installation under storeDir, sorted by name
// then version. A missing store is empty, not an error.
func List(storeDir string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(storeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == storeDir && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() && d.Name() == stagingDir {
			return filepath.SkipDir
		}
		if d.IsDir() || d.Name() != MarkerFile {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		e.Dir = filepath.Dir(path)
		entries = append(entries, e)
		// Nothing below a package root is another installation.
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("listing store %s: %w", storeDir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Version < entries[j].Version
	})
	return entries, nil
}

// Remove deletes every installed version of name from storeDir, or every
// installation when name is empty. It returns the number removed.
func Remove(storeDir, name string) (int, error) {
	entries, err := List(storeDir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if name != "" && e.Name != name {
			continue
		}
		if err := os.RemoveAll(e.Dir); err != nil {
			return removed, fmt.Errorf("removing %s@%s: %w", e.Name, e.Version, err)
		}
		removed++
		if err := removeEmptyParent(storeDir, e.Dir); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// removeEmptyParent deletes the scope level a scoped cache dir sits in
// once nothing is left in it.
func removeEmptyParent(storeDir, dir string) error {
	parent := filepath.Dir(dir)
	if filepath.Clean(parent) == filepath.Clean(storeDir) {
		return nil
	}
	children, err := os.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", parent, err)
	}
	if len(children) > 0 {
		return nil
	}
	if err := os.Remove(parent); err != nil {
		return fmt.Errorf("removing %s: %w", parent, err)
	}
	return nil
}
