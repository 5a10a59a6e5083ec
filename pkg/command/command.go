package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"
)

// Command is implemented by every dispatched entry point.
type Command interface {
	// Init parses and validates the command's arguments.
	Init(args []string, options map[string]any) error
	// Exec performs the work.
	Exec(ctx context.Context) error
}

// Checker is implemented by commands with prerequisites of their own.
type Checker interface {
	Check(ctx context.Context) error
}

// HostConstrained is implemented by commands that need a minimum CLI
// version. MinHostVersion returns a semantic version such as "1.2.0".
type HostConstrained interface {
	MinHostVersion() string
}

type runner struct {
	stderr  io.Writer
	payload *Payload
	argv    []string
}

// Option configures Run.
type Option func(*runner)

// WithStderr sets where Run reports a failure. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(r *runner) {
		r.stderr = w
	}
}

// WithPayload skips DecodePayload and runs with p.
func WithPayload(p Payload) Option {
	return func(r *runner) {
		r.payload = &p
	}
}

// WithArgs sets the command line used when no payload is in the
// environment. Defaults to os.Args[1:].
func WithArgs(argv []string) Option {
	return func(r *runner) {
		r.argv = argv
	}
}

// Run decodes the payload, executes cmd and returns the process exit code.
func Run(ctx context.Context, cmd Command, opts ...Option) int {
	r := &runner{stderr: os.Stderr, argv: os.Args[1:]}
	for _, opt := range opts {
		opt(r)
	}

	var payload Payload
	if r.payload != nil {
		payload = *r.payload
	} else {
		p, err := DecodePayload(cmd, r.argv)
		if err != nil {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
			return 1
		}
		payload = p
	}

	if err := Execute(ctx, payload, cmd); err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Execute checks the environment, then calls Init and Exec.
func Execute(ctx context.Context, payload Payload, cmd Command) error {
	if err := checkEnvironment(ctx, payload, cmd); err != nil {
		return err
	}

	args := payload.Args
	if args == nil {
		args = []string{}
	}
	options := payload.Options
	if options == nil {
		options = map[string]any{}
	}
	log.WithFields(log.Fields{"command": payload.Command, "args": args}).Debug("initializing command")
	ctx = context.WithValue(ctx, payloadKey{}, payload)

	if err := cmd.Init(args, options); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := cmd.Exec(ctx); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

type payloadKey struct{}

// PayloadFrom returns the payload Execute is running with.
func PayloadFrom(ctx context.Context) (Payload, bool) {
	p, ok := ctx.Value(payloadKey{}).(Payload)
	return p, ok
}

func checkEnvironment(ctx context.Context, payload Payload, cmd Command) error {
	if hc, ok := cmd.(HostConstrained); ok {
		if err := checkHostVersion(hc.MinHostVersion(), payload.HostVersion); err != nil {
			return err
		}
	}
	if c, ok := cmd.(Checker); ok {
		if err := c.Check(ctx); err != nil {
			var envErr *EnvironmentError
			if errors.As(err, &envErr) {
				return err
			}
			return &EnvironmentError{Err: err}
		}
	}
	return nil
}

// checkHostVersion compares the CLI version against minVersion. Standalone
// runs and development builds carry no comparable version and pass.
func checkHostVersion(minVersion, hostVersion string) error {
	if minVersion == "" || hostVersion == "" {
		return nil
	}
	host, err := semver.NewVersion(hostVersion)
	if err != nil {
		log.WithField("host_version", hostVersion).Debug("skipping host version check")
		return nil
	}
	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return &EnvironmentError{Required: minVersion, Err: fmt.Errorf("invalid minimum version: %w", err)}
	}
	if !constraint.Check(host) {
		return &EnvironmentError{Required: minVersion, Found: hostVersion}
	}
	return nil
}
