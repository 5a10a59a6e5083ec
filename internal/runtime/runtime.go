package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runtime executes one command invocation.
type Runtime interface {
	Run(ctx context.Context, inv Invocation) (*Output, error)
}

// Invocation is everything a child process needs.
type Invocation struct {
	// Entry is the absolute path of the module or executable to run.
	Entry string
	// Args are the positional arguments, in order.
	Args []string
	// Options are the sanitized command options.
	Options map[string]any
	// Payload is the encoded JSON payload, exported to the child as
	// STENCIL_PAYLOAD.
	Payload []byte
	// Dir is the child's working directory. Empty inherits ours.
	Dir string
}

// Output captures the result of an execution.
type Output struct {
	ExitCode int
}

// Streams are the child's standard streams. Nil fields inherit the
// corresponding stream of the current process.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ForEntry returns the runtime that can execute entry.
func ForEntry(entry string, streams Streams) Runtime {
	switch strings.ToLower(filepath.Ext(entry)) {
	case ".js", ".cjs":
		return &NodeRuntime{Streams: streams}
	default:
		return &BinaryRuntime{Streams: streams}
	}
}

func (s Streams) attach(cmd *exec.Cmd) {
	cmd.Stdin = s.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = s.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = s.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
}

// wait runs cmd to completion. A non-zero exit is reported through Output,
// not as an error.
func wait(cmd *exec.Cmd) (*Output, error) {
	err := cmd.Run()
	if err == nil {
		return &Output{ExitCode: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return &Output{ExitCode: exitErr.ExitCode()}, nil
	}
	return nil, fmt.Errorf("running %s: %w", cmd.Path, err)
}

// buildEnv inherits the current environment and exports the payload.
func buildEnv(payload []byte) []string {
	env := os.Environ()
	if payload != nil {
		env = setEnv(env, PayloadEnv, string(payload))
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
