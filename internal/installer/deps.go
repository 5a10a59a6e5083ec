package installer

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// InstallNodeDeps runs `npm install --omit=dev` in dir. When npm is not
// available it returns a warning instead of an error, leaving the package
// usable if its entry point has no runtime dependencies.
func InstallNodeDeps(ctx context.Context, dir string) (string, error) {
	npmPath, err := exec.LookPath("npm")
	if err != nil {
		return "npm not found, skipping dependency installation", nil
	}

	cmd := exec.CommandContext(ctx, npmPath, "install", "--omit=dev", "--prefer-offline", "--no-audit", "--no-fund")
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("npm install in %s: %w", dir, err)
	}
	return "", nil
}
