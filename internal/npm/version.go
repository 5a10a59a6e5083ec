package npm

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// sortedVersions parses the keys of versions and returns them highest
// first. Keys that are not valid semver are skipped.
func sortedVersions(versions map[string]*VersionInfo) []*semver.Version {
	parsed := make([]*semver.Version, 0, len(versions))
	for raw := range versions {
		v, err := semver.StrictNewVersion(raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}
	sort.Sort(sort.Reverse(semver.Collection(parsed)))
	return parsed
}

// parseVersion strips a leading "v" and parses the version string.
func parseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
