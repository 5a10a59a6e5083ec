package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two versions, tolerating a leading "v".
// It returns -1 if a < b, 0 if equal and 1 if a > b.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// IsUpdateAvailable reports whether latest is newer than current.
func IsUpdateAvailable(current, latest string) (bool, error) {
	cmp, err := CompareVersions(current, latest)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// IsRelease reports whether v is a semantic version.
func IsRelease(v string) bool {
	_, err := parseSemver(v)
	return err == nil
}

// Highest returns the greatest valid version in versions, or "" if none
// parse.
func Highest(versions []string) string {
	var best *semver.Version
	highest := ""
	for _, v := range versions {
		sv, err := parseSemver(v)
		if err != nil {
			continue
		}
		if best == nil || sv.GreaterThan(best) {
			best, highest = sv, v
		}
	}
	return highest
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
