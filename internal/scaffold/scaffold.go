package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/stencil-labs/stencil/internal/manifest"
)

//go:embed templates
var templateFS embed.FS

// Dotfiles cannot be embedded by name, so templates are stored without the
// leading dot and renamed on output.
var outputNames = map[string]string{
	"gitignore": ".gitignore",
}

// Data holds the variables available to templates.
type Data struct {
	Name        string
	Version     string
	Description string
	HostVersion string
	Year        int
}

// NewData returns Data for a project called name.
func NewData(name, hostVersion string) *Data {
	if hostVersion == "" {
		hostVersion = "dev"
	}
	return &Data{
		Name:        name,
		Version:     "1.0.0",
		Description: fmt.Sprintf("The %s project", name),
		HostVersion: hostVersion,
		Year:        time.Now().Year(),
	}
}

// Result holds the outcome of a generation.
type Result struct {
	OutputDir string
	Files     []string
	// Skipped lists files that already existed.
	Skipped  []string
	Warnings []string
}

// Sets returns the names of the embedded template sets.
func Sets() ([]string, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	var sets []string
	for _, e := range entries {
		if e.IsDir() {
			sets = append(sets, e.Name())
		}
	}
	return sets, nil
}

// Generate renders template set into outputDir, creating it if needed.
func Generate(set string, data *Data, outputDir string) (*Result, error) {
	templatesDir := path.Join("templates", set)
	entries, err := fs.ReadDir(templateFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", set, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		if renamed, ok := outputNames[outName]; ok {
			outName = renamed
		}
		outPath := filepath.Join(outputDir, outName)
		if _, err := os.Stat(outPath); err == nil {
			result.Skipped = append(result.Skipped, outName)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w", outPath, err)
		}

		rendered, err := render(path.Join(templatesDir, entry.Name()), data)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(outPath, rendered, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outName)
	}

	result.Warnings = validateManifest(outputDir)
	return result, nil
}

func render(name string, data *Data) ([]byte, error) {
	raw, err := fs.ReadFile(templateFS, name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(path.Base(name)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// validateManifest checks the project's package.json and returns any
// problems as warnings.
func validateManifest(dir string) []string {
	data, err := os.ReadFile(filepath.Join(dir, manifest.FileName))
	if err != nil {
		return nil
	}
	res, err := manifest.Validate(data)
	if err != nil {
		return []string{fmt.Sprintf("could not validate %s: %v", manifest.FileName, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
