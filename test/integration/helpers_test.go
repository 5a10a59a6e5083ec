//go:build integration

package integration_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds .env and .stencil/
	CacheHome  string // STENCIL_CACHE_HOME
	ProjectDir string // working directory for dispatched commands
}

// setupTestEnv creates isolated temp directories and points HOME and the
// cache at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	env.CacheHome = filepath.Join(env.HomeDir, ".stencil")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)
	t.Setenv("STENCIL_CACHE_HOME", env.CacheHome)
	t.Setenv("STENCIL_TARGET_PATH", "")
	return env
}

// fakeRegistry serves packages the way the npm registry does: a packument
// per name and a tarball per version.
type fakeRegistry struct {
	*httptest.Server

	mu       sync.Mutex
	packages map[string]map[string][]byte // name -> version -> tarball
	tarballs int
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()
	r := &fakeRegistry{packages: map[string]map[string][]byte{}}
	r.Server = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.Close)
	return r
}

// publish adds name@version built from files (path -> content).
func (r *fakeRegistry) publish(t *testing.T, name, version string, files map[string]string) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.packages[name] == nil {
		r.packages[name] = map[string][]byte{}
	}
	r.packages[name][version] = buildTarball(t, files)
}

func (r *fakeRegistry) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := strings.TrimPrefix(req.URL.Path, "/")
	if name, version, ok := strings.Cut(p, "/-/"); ok {
		tarball, found := r.packages[name][strings.TrimSuffix(version, ".tgz")]
		if !found {
			http.NotFound(w, req)
			return
		}
		r.tarballs++
		w.Write(tarball)
		return
	}

	name, version := splitNameVersion(p)
	versions, found := r.packages[name]
	if !found {
		http.NotFound(w, req)
		return
	}

	meta := func(v string) map[string]any {
		sum := sha1.Sum(versions[v])
		return map[string]any{
			"name":    name,
			"version": v,
			"dist": map[string]any{
				"tarball": r.URL + "/" + name + "/-/" + v + ".tgz",
				"shasum":  hex.EncodeToString(sum[:]),
			},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if version != "" {
		if _, ok := versions[version]; !ok {
			http.NotFound(w, req)
			return
		}
		json.NewEncoder(w).Encode(meta(version))
		return
	}

	all := map[string]any{}
	latest := ""
	for v := range versions {
		all[v] = meta(v)
		if v > latest {
			latest = v
		}
	}
	json.NewEncoder(w).Encode(map[string]any{
		"name":      name,
		"dist-tags": map[string]string{"latest": latest},
		"versions":  all,
	})
}

// splitNameVersion splits "@scope/name/1.0.0" or "name/1.0.0".
func splitNameVersion(p string) (name, version string) {
	parts := strings.Split(p, "/")
	n := 1
	if strings.HasPrefix(p, "@") {
		n = 2
	}
	if len(parts) <= n {
		return p, ""
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/")
}

func buildTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		mode := int64(0644)
		if strings.HasSuffix(name, ".sh") {
			mode = 0755
		}
		hdr := &tar.Header{Name: "package/" + name, Mode: mode, Size: int64(len(content)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func (r *fakeRegistry) tarballRequests() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tarballs
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}
