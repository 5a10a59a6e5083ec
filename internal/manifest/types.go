package manifest

// FileName is the manifest file every package carries at its root.
const FileName = "package.json"

// Package is the subset of package.json the cache and dispatcher read.
type Package struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Main         string            `json:"main,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
