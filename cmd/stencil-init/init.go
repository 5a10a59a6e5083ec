package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/pflag"
	"github.com/stencil-labs/stencil/internal/dispatch"
	"github.com/stencil-labs/stencil/internal/scaffold"
	"github.com/stencil-labs/stencil/pkg/command"
)

// minHostVersion is the first CLI release that sends versioned payloads.
const minHostVersion = "0.1.0"

// Letters first, then letters and digits, optionally joined by single
// "-" or "_" separators that are followed by a letter.
var projectNamePattern = regexp.MustCompile(`^[a-zA-Z]+([-_][a-zA-Z][a-zA-Z0-9]*|[a-zA-Z0-9])*$`)

type initCommand struct {
	projectName string
	force       bool

	// cwd and out default to the working directory and stdout.
	cwd string
	out io.Writer
}

func (c *initCommand) MinHostVersion() string { return minHostVersion }

func (c *initCommand) Flags(fs *pflag.FlagSet) { dispatch.InitFlags(fs) }

func (c *initCommand) Init(args []string, options map[string]any) error {
	if len(args) > 0 {
		c.projectName = args[0]
	}
	if c.projectName == "" {
		return errors.New("project name is required")
	}
	if !projectNamePattern.MatchString(c.projectName) {
		return fmt.Errorf("invalid project name %q", c.projectName)
	}
	c.force, _ = options["force"].(bool)
	return nil
}

func (c *initCommand) Exec(ctx context.Context) error {
	cwd := c.cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cwd = wd
	}
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	dir := filepath.Join(cwd, c.projectName)
	empty, err := isEmptyDir(dir)
	if err != nil {
		return err
	}
	if !empty && !c.force {
		return fmt.Errorf("directory %s is not empty, use --force to initialize it anyway", dir)
	}

	payload, _ := command.PayloadFrom(ctx)
	result, err := scaffold.Generate("project", scaffold.NewData(c.projectName, payload.HostVersion), dir)
	if err != nil {
		return err
	}
	for _, f := range result.Files {
		fmt.Fprintf(out, "  create %s\n", f)
	}
	for _, f := range result.Skipped {
		fmt.Fprintf(out, "  keep   %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}

	fmt.Fprintf(out, "Created project %s in %s\n", c.projectName, dir)
	return nil
}

// isEmptyDir reports whether dir is missing or has no entries.
func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}
