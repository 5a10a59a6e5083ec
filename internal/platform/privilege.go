package platform

import (
	"os"
	"runtime"
)

// IsPrivileged reports whether the process runs as root. Files written to
// the cache by root would be unwritable for later unprivileged runs.
// Windows has no equivalent check and always reports false.
func IsPrivileged() bool {
	if runtime.GOOS == "windows" {
		return false
	}
	return os.Geteuid() == 0
}
