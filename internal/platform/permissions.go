package platform

import (
	"os"
	"runtime"
)

// SetMode applies the permission bits of mode to path, ignoring the umask.
// Windows has no Unix permission bits, so it does nothing there.
func SetMode(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode.Perm())
}
