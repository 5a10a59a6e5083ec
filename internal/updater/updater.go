package updater

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Registry lists published versions newer than a base version, highest
// first.
type Registry interface {
	NewerVersions(ctx context.Context, name, base string) ([]string, error)
}

// Notice describes an available update.
type Notice struct {
	Package string
	Current string
	Latest  string
}

// Updater checks the registry for newer releases of one package.
type Updater struct {
	packageName    string
	currentVersion string
	registry       Registry
	cacheDir       string
	maxAge         time.Duration
	now            func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithCacheDir caches check results in dir. Without it every Check queries
// the registry.
func WithCacheDir(dir string) Option {
	return func(u *Updater) {
		u.cacheDir = dir
	}
}

// WithMaxAge overrides DefaultCacheMaxAge.
func WithMaxAge(d time.Duration) Option {
	return func(u *Updater) {
		u.maxAge = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(u *Updater) {
		u.now = now
	}
}

// New creates an Updater for packageName at currentVersion.
func New(packageName, currentVersion string, registry Registry, opts ...Option) *Updater {
	u := &Updater{
		packageName:    packageName,
		currentVersion: currentVersion,
		registry:       registry,
		maxAge:         DefaultCacheMaxAge,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// Check returns a Notice when a newer version is published, or nil. Builds
// without a semantic version (such as "dev") are never checked.
func (u *Updater) Check(ctx context.Context) (*Notice, error) {
	if !IsRelease(u.currentVersion) {
		return nil, nil
	}

	if u.cacheDir != "" {
		cache, err := LoadCache(u.cacheDir)
		if err != nil {
			log.WithError(err).Debug("ignoring unreadable update cache")
		}
		if cache.ValidFor(u.packageName, u.currentVersion) && !cache.StaleAt(u.now(), u.maxAge) {
			return cache.Notice(), nil
		}
	}

	newer, err := u.registry.NewerVersions(ctx, u.packageName, u.currentVersion)
	if err != nil {
		return nil, err
	}
	cache := &VersionCache{
		Package:        u.packageName,
		CurrentVersion: u.currentVersion,
		LatestVersion:  Highest(newer),
		CheckedAt:      u.now(),
	}
	if u.cacheDir != "" {
		if err := SaveCache(u.cacheDir, cache); err != nil {
			log.WithError(err).Debug("could not save update cache")
		}
	}
	return cache.Notice(), nil
}
