package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/stencil-labs/stencil/internal/branding"
	"github.com/stencil-labs/stencil/internal/config"
	"github.com/stencil-labs/stencil/internal/installer"
	"github.com/stencil-labs/stencil/internal/npm"
	"github.com/stencil-labs/stencil/internal/pkgcache"
	"github.com/stencil-labs/stencil/internal/runtime"
	"github.com/stencil-labs/stencil/pkg/command"
)

// RuntimeSelector picks the runtime for an entry file.
type RuntimeSelector func(entry string) runtime.Runtime

// Dispatcher runs commands from the command table.
type Dispatcher struct {
	settings    config.Settings
	hostVersion string
	resolver    pkgcache.VersionResolver
	installer   pkgcache.Installer
	selectRT    RuntimeSelector
	streams     runtime.Streams
	progress    io.Writer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHostVersion sets the CLI version reported to commands.
func WithHostVersion(v string) Option {
	return func(d *Dispatcher) {
		d.hostVersion = v
	}
}

// WithResolver replaces the registry used to resolve latest versions.
func WithResolver(r pkgcache.VersionResolver) Option {
	return func(d *Dispatcher) {
		d.resolver = r
	}
}

// WithInstaller replaces the package installer.
func WithInstaller(i pkgcache.Installer) Option {
	return func(d *Dispatcher) {
		d.installer = i
	}
}

// WithRuntime replaces runtime selection.
func WithRuntime(s RuntimeSelector) Option {
	return func(d *Dispatcher) {
		d.selectRT = s
	}
}

// WithStreams sets the child's standard streams. Unset streams are inherited.
func WithStreams(s runtime.Streams) Option {
	return func(d *Dispatcher) {
		d.streams = s
	}
}

// WithProgress sets where download progress is drawn. Nil disables it.
func WithProgress(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.progress = w
	}
}

// New creates a Dispatcher. Without WithResolver and WithInstaller it talks
// to the registry configured in settings.
func New(settings config.Settings, opts ...Option) *Dispatcher {
	d := &Dispatcher{settings: settings, progress: os.Stderr}
	for _, opt := range opts {
		opt(d)
	}

	if d.resolver == nil || d.installer == nil {
		client := npm.New(
			npm.WithRegistry(RegistryURL(settings)),
			npm.WithUserAgent(branding.CLIName()+"/"+d.hostVersion),
		)
		if d.resolver == nil {
			d.resolver = client
		}
		if d.installer == nil {
			d.installer = installer.New(client,
				installer.WithProgress(d.progress),
				installer.WithNodeDeps(settings.InstallDeps),
			)
		}
	}
	if d.selectRT == nil {
		streams := d.streams
		d.selectRT = func(entry string) runtime.Runtime {
			return runtime.ForEntry(entry, streams)
		}
	}
	return d
}

// RegistryURL returns the registry base URL for settings: an explicit
// registry wins over the official/mirror choice.
func RegistryURL(settings config.Settings) string {
	if settings.Registry != "" {
		return settings.Registry
	}
	return npm.DefaultRegistryURL(settings.UseOfficialRegistry)
}

// Package builds the cache handle for c. A configured target path selects
// direct mode.
func (d *Dispatcher) Package(c Command) (*pkgcache.Package, error) {
	if d.settings.Direct() {
		return pkgcache.New(c.Package, pkgcache.Latest(), d.resolver, d.installer,
			pkgcache.WithTargetPath(d.settings.TargetPath))
	}
	return pkgcache.New(c.Package, pkgcache.Latest(), d.resolver, d.installer,
		pkgcache.WithTargetPath(d.settings.DependenciesDir()),
		pkgcache.WithStoreDir(d.settings.StoreDir()))
}

// Resolve makes the package behind c available locally. In cached mode it
// updates an existing installation or installs a fresh one; in direct mode
// the target path is used as it is.
func (d *Dispatcher) Resolve(ctx context.Context, c Command) (*pkgcache.Package, error) {
	pkg, err := d.Package(c)
	if err != nil {
		return nil, &DependencyResolutionError{Package: c.Package, Err: err}
	}
	if !pkg.Cached() {
		return pkg, nil
	}

	if d.settings.NetworkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.settings.NetworkTimeout)
		defer cancel()
	}

	exists, err := pkg.Exists(ctx)
	if err != nil {
		return nil, &DependencyResolutionError{Package: c.Package, Err: err}
	}
	if exists {
		err = pkg.Update(ctx)
	} else {
		err = pkg.Install(ctx)
	}
	if err != nil {
		return nil, &DependencyResolutionError{Package: c.Package, Err: err}
	}

	log.WithFields(log.Fields{"package": c.Package, "version": pkg.Version().String()}).Debug("package resolved")
	return pkg, nil
}

// Run dispatches the named command and returns its exit code. A non-zero
// exit is also reported as *ExitError.
func (d *Dispatcher) Run(ctx context.Context, name string, args []string, options map[string]any) (int, error) {
	c, ok := Lookup(name)
	if !ok {
		return 1, &UnknownCommandError{Name: name}
	}

	pkg, err := d.Resolve(ctx, c)
	if err != nil {
		return 1, err
	}

	entry, err := pkg.RootFilePath()
	if err != nil {
		return 1, &EntryPointMissingError{Package: c.Package, Dir: pkg.Dir(), Err: err}
	}
	if entry == "" {
		return 1, &EntryPointMissingError{Package: c.Package, Dir: pkg.Dir()}
	}
	entry = filepath.FromSlash(entry)

	if args == nil {
		args = []string{}
	}
	clean := Sanitize(options)
	payload, err := command.Payload{
		Version:     command.PayloadVersion,
		HostVersion: d.hostVersion,
		Command:     c.Name,
		Args:        args,
		Options:     clean,
	}.Encode()
	if err != nil {
		return 1, err
	}

	if d.settings.ExecTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.settings.ExecTimeout)
		defer cancel()
	}

	log.WithFields(log.Fields{"command": c.Name, "entry": entry}).Debug("dispatching command")
	out, err := d.selectRT(entry).Run(ctx, runtime.Invocation{
		Entry:   entry,
		Args:    args,
		Options: clean,
		Payload: payload,
	})
	if err != nil {
		return 1, fmt.Errorf("running %s: %w", c.Name, err)
	}
	if out.ExitCode != 0 {
		return out.ExitCode, &ExitError{Command: c.Name, Code: out.ExitCode}
	}
	return 0, nil
}
