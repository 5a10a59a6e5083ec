package pkgcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stencil-labs/stencil/internal/installer"
	"github.com/stencil-labs/stencil/internal/manifest"
	"github.com/stencil-labs/stencil/internal/pathname"
)

// stagingDir holds in-flight installs inside the store. Cache keys always
// start with "_", so it never collides with an installed package.
const stagingDir = ".staging"

// VersionResolver resolves the latest published version of a package.
type VersionResolver interface {
	FetchLatestVersion(ctx context.Context, name string) (string, error)
}

// Installer fetches name@version into dest.
type Installer interface {
	Install(ctx context.Context, name, version, dest string) error
}

// Package is one (name, targetPath, storeDir) triple.
type Package struct {
	name       string
	version    Version
	targetPath string
	storeDir   string
	resolver   VersionResolver
	installer  Installer
}

// Option configures a Package.
type Option func(*Package)

// WithTargetPath sets the directory used as the installation root in
// direct mode.
func WithTargetPath(path string) Option {
	return func(p *Package) {
		p.targetPath = path
	}
}

// WithStoreDir enables cached mode with every version stored under dir.
func WithStoreDir(dir string) Option {
	return func(p *Package) {
		p.storeDir = dir
	}
}

// New creates a Package. Either a store dir (cached mode) or a target path
// (direct mode) is required.
func New(name string, version Version, resolver VersionResolver, inst Installer, opts ...Option) (*Package, error) {
	if name == "" {
		return nil, errors.New("package name is required")
	}
	p := &Package{
		name:      name,
		version:   version,
		resolver:  resolver,
		installer: inst,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.storeDir == "" && p.targetPath == "" {
		return nil, fmt.Errorf("package %s: a store dir or target path is required", name)
	}
	return p, nil
}

// Name returns the registry name.
func (p *Package) Name() string { return p.name }

// Version returns the current version. It may still be Latest before
// Prepare has run.
func (p *Package) Version() Version { return p.version }

// Cached reports whether the package uses the versioned store.
func (p *Package) Cached() bool { return p.storeDir != "" }

// Dir returns the directory the package is (or will be) installed in: the
// versioned cache dir in cached mode, the target path in direct mode.
func (p *Package) Dir() string {
	if p.Cached() {
		return pathname.CacheDir(p.storeDir, p.name, p.version.String())
	}
	return p.targetPath
}

// Prepare ensures the store dir exists and freezes a Latest version to the
// registry's current latest. Calling it again is a no-op.
func (p *Package) Prepare(ctx context.Context) error {
	if p.Cached() {
		if err := os.MkdirAll(p.storeDir, 0755); err != nil {
			return fmt.Errorf("creating store dir %s: %w", p.storeDir, err)
		}
	}
	if !p.version.IsLatest() {
		return nil
	}

	latest, err := p.resolver.FetchLatestVersion(ctx, p.name)
	if err != nil {
		return err
	}
	v, err := Concrete(latest)
	if err != nil {
		return fmt.Errorf("registry returned %s for %s: %w", latest, p.name, err)
	}
	log.WithFields(log.Fields{"package": p.name, "version": latest}).Debug("resolved latest version")
	p.version = v
	return nil
}

// Exists reports whether the package is installed. In cached mode it runs
// Prepare first, so Version is authoritative afterwards.
func (p *Package) Exists(ctx context.Context) (bool, error) {
	if !p.Cached() {
		return pathExists(p.targetPath), nil
	}
	if err := p.Prepare(ctx); err != nil {
		return false, err
	}
	return isComplete(p.Dir()), nil
}

// Install fetches the current version. In cached mode the package is staged
// and renamed into place, so a crashed install never looks complete.
func (p *Package) Install(ctx context.Context) error {
	if err := p.Prepare(ctx); err != nil {
		return err
	}
	if !p.Cached() {
		return asInstallError(p.name, p.version.String(), p.installer.Install(ctx, p.name, p.version.String(), p.targetPath))
	}
	return p.installCached(ctx, p.version)
}

// Update installs the registry's latest version unless it is already in the
// store, then rebinds Version to it. In direct mode it installs only when
// the target path is missing.
func (p *Package) Update(ctx context.Context) error {
	if err := p.Prepare(ctx); err != nil {
		return err
	}
	if !p.Cached() {
		if pathExists(p.targetPath) {
			return nil
		}
		return p.Install(ctx)
	}

	latest, err := p.resolver.FetchLatestVersion(ctx, p.name)
	if err != nil {
		return err
	}
	v, err := Concrete(latest)
	if err != nil {
		return fmt.Errorf("registry returned %s for %s: %w", latest, p.name, err)
	}

	dir := pathname.CacheDir(p.storeDir, p.name, v.String())
	if isComplete(dir) {
		log.WithFields(log.Fields{"package": p.name, "version": latest}).Debug("package is up to date")
	} else if err := p.installCached(ctx, v); err != nil {
		return err
	}
	p.version = v
	return nil
}

// RootFilePath returns the absolute, "/"-normalized path of the module named
// by the main field of the nearest package.json above Dir. It returns ""
// with a nil error when there is no manifest or no main field.
func (p *Package) RootFilePath() (string, error) {
	if p.Cached() && p.version.IsLatest() {
		return "", fmt.Errorf("package %s: version not resolved, Prepare must run first", p.name)
	}
	dir := p.Dir()
	if !pathExists(dir) {
		return "", nil
	}
	entry, err := manifest.MainFile(dir)
	if err != nil || entry == "" {
		return "", err
	}
	return pathname.NormalizePath(entry), nil
}

func (p *Package) installCached(ctx context.Context, v Version) error {
	version := v.String()
	dir := pathname.CacheDir(p.storeDir, p.name, version)
	if isComplete(dir) {
		return nil
	}

	stagingRoot := filepath.Join(p.storeDir, stagingDir)
	if err := os.MkdirAll(stagingRoot, 0755); err != nil {
		return asInstallError(p.name, version, fmt.Errorf("creating staging dir: %w", err))
	}
	staging := filepath.Join(stagingRoot, uuid.NewString())
	defer os.RemoveAll(staging)

	log.WithFields(log.Fields{"package": p.name, "version": version}).Info("installing package")
	if err := p.installer.Install(ctx, p.name, version, staging); err != nil {
		return asInstallError(p.name, version, err)
	}
	if err := writeMarker(staging, p.name, version); err != nil {
		return asInstallError(p.name, version, err)
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return asInstallError(p.name, version, fmt.Errorf("creating %s: %w", filepath.Dir(dir), err))
	}
	// A directory without a marker is left over from an interrupted install.
	if pathExists(dir) && !isComplete(dir) {
		if err := os.RemoveAll(dir); err != nil {
			return asInstallError(p.name, version, fmt.Errorf("removing incomplete install %s: %w", dir, err))
		}
	}
	if err := os.Rename(staging, dir); err != nil {
		// Another process finished the same install first.
		if isComplete(dir) {
			return nil
		}
		return asInstallError(p.name, version, fmt.Errorf("moving install into place: %w", err))
	}
	return nil
}

func asInstallError(name, version string, err error) error {
	if err == nil {
		return nil
	}
	var installErr *installer.InstallError
	if errors.As(err, &installErr) {
		return err
	}
	return &installer.InstallError{Name: name, Version: version, Err: err}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
