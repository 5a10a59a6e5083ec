package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot walks upward from dir and returns the first directory containing
// a package.json. ok is false when the filesystem root is reached without
// finding one.
func FindRoot(dir string) (root string, ok bool, err error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		info, statErr := os.Stat(filepath.Join(current, FileName))
		if statErr == nil && !info.IsDir() {
			return current, true, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false, nil
		}
		current = parent
	}
}

// ParseFile reads and validates a package.json file.
func ParseFile(path string) (*Package, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &pkg, nil
}

// MainFile returns the absolute path of the module declared by the main
// field of the nearest manifest above dir. It returns "" with a nil error
// when there is no manifest or the manifest declares no main module.
func MainFile(dir string) (string, error) {
	root, ok, err := FindRoot(dir)
	if err != nil || !ok {
		return "", err
	}

	pkg, err := ParseFile(filepath.Join(root, FileName))
	if err != nil {
		return "", err
	}
	if pkg.Main == "" {
		return "", nil
	}
	main := filepath.FromSlash(pkg.Main)
	if filepath.IsAbs(main) {
		return filepath.Clean(main), nil
	}
	return filepath.Join(root, main), nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
