package npm

import (
	"errors"
	"fmt"
)

// ErrNoVersions is wrapped by RegistryError when a package has no
// published versions.
var ErrNoVersions = errors.New("no published versions")

// RegistryError reports a failed registry query: a transport failure, a
// non-200 response, an undecodable body, or a package with no versions.
type RegistryError struct {
	Name       string
	URL        string
	StatusCode int
	Err        error
}

func (e *RegistryError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("registry query for %s returned status %d", e.Name, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("registry query for %s: %v", e.Name, e.Err)
	default:
		return fmt.Sprintf("registry query for %s failed", e.Name)
	}
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}
