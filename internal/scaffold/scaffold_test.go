package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestSets(t *testing.T) {
	sets, err := Sets()
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) == 0 || sets[0] != "project" {
		t.Errorf("Sets() = %v, want [project]", sets)
	}
}

func TestGenerateProject(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo")

	result, err := Generate("project", NewData("demo", "1.2.0"), out)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	files := append([]string(nil), result.Files...)
	sort.Strings(files)
	want := []string{".gitignore", "README.md", "index.js", "package.json"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("Files = %v, want %v", files, want)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	data, err := os.ReadFile(filepath.Join(out, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("generated package.json is not valid JSON: %v", err)
	}
	if pkg["name"] != "demo" || pkg["main"] != "index.js" {
		t.Errorf("package.json = %v", pkg)
	}

	readme, _ := os.ReadFile(filepath.Join(out, "README.md"))
	if !strings.Contains(string(readme), "stencil 1.2.0") {
		t.Errorf("README.md = %q", readme)
	}
}

func TestGenerate_KeepsExistingFiles(t *testing.T) {
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(out, "README.md"), []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Generate("project", NewData("demo", ""), out)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "README.md" {
		t.Errorf("Skipped = %v", result.Skipped)
	}
	readme, _ := os.ReadFile(filepath.Join(out, "README.md"))
	if string(readme) != "mine" {
		t.Error("existing README.md was overwritten")
	}
}

func TestGenerate_InvalidExistingManifest(t *testing.T) {
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(out, "package.json"), []byte(`{"name": 42}`), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Generate("project", NewData("demo", ""), out)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for an invalid package.json")
	}
}

func TestGenerate_UnknownSet(t *testing.T) {
	if _, err := Generate("nope", NewData("demo", ""), t.TempDir()); err == nil {
		t.Error("expected error for unknown template set")
	}
}
