package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSetMode(t *testing.T) {
	tests := []struct {
		name string
		mode os.FileMode
	}{
		{"private file", 0600},
		{"executable", 0755},
		{"type bits ignored", os.ModeSymlink | 0644},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file")
			if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
			if err := SetMode(path, tt.mode); err != nil {
				t.Fatalf("SetMode failed: %v", err)
			}
			if runtime.GOOS == "windows" {
				return
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := info.Mode().Perm(); perm != tt.mode.Perm() {
				t.Errorf("permissions = %o, want %o", perm, tt.mode.Perm())
			}
		})
	}
}

func TestIsPrivileged(t *testing.T) {
	want := runtime.GOOS != "windows" && os.Geteuid() == 0
	if got := IsPrivileged(); got != want {
		t.Errorf("IsPrivileged() = %v, want %v", got, want)
	}
}
