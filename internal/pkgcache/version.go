package pkgcache

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// LatestTag is the symbolic version resolved against the registry.
const LatestTag = "latest"

// Version is either Latest or a concrete semantic version. The zero value
// is Latest.
type Version struct {
	v *semver.Version
}

// Latest returns the symbolic version.
func Latest() Version {
	return Version{}
}

// Concrete parses s as a strict semantic version.
func Concrete(s string) (Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// ParseVersion accepts "latest" or a strict semantic version.
func ParseVersion(s string) (Version, error) {
	if s == LatestTag {
		return Latest(), nil
	}
	return Concrete(s)
}

// IsLatest reports whether v still needs resolving.
func (v Version) IsLatest() bool {
	return v.v == nil
}

func (v Version) String() string {
	if v.v == nil {
		return LatestTag
	}
	return v.v.Original()
}

// Equal reports whether both versions are Latest or the same concrete version.
func (v Version) Equal(o Version) bool {
	if v.v == nil || o.v == nil {
		return v.v == nil && o.v == nil
	}
	return v.v.Equal(o.v)
}
