package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/stencil-labs/stencil/internal/npm"
)

// VersionFetcher returns the registry metadata of one published version.
type VersionFetcher interface {
	FetchVersion(ctx context.Context, name, version string) (*npm.VersionInfo, error)
}

// Installer downloads and unpacks registry packages.
type Installer struct {
	registry    VersionFetcher
	httpClient  *http.Client
	progress    io.Writer
	installDeps bool
}

// Option configures an Installer.
type Option func(*Installer)

// WithHTTPClient sets the client used for tarball downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Installer) {
		i.httpClient = c
	}
}

// WithProgress renders a download progress bar to w. A nil writer disables it.
func WithProgress(w io.Writer) Option {
	return func(i *Installer) {
		i.progress = w
	}
}

// WithNodeDeps runs `npm install` in packages that declare dependencies.
func WithNodeDeps(enabled bool) Option {
	return func(i *Installer) {
		i.installDeps = enabled
	}
}

// New creates an Installer that resolves tarballs through registry.
func New(registry VersionFetcher, opts ...Option) *Installer {
	i := &Installer{
		registry:   registry,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install fetches name@version and unpacks it into dest, creating dest if
// needed. Every failure is returned as an *InstallError.
func (i *Installer) Install(ctx context.Context, name, version, dest string) error {
	wrap := func(err error) error {
		return &InstallError{Name: name, Version: version, Err: err}
	}

	info, err := i.registry.FetchVersion(ctx, name, version)
	if err != nil {
		return wrap(err)
	}
	if info.Dist.Tarball == "" {
		return wrap(fmt.Errorf("registry metadata has no tarball URL"))
	}

	archive, err := os.CreateTemp("", "stencil-*.tgz")
	if err != nil {
		return wrap(fmt.Errorf("creating download file: %w", err))
	}
	defer os.Remove(archive.Name())
	defer archive.Close()

	if err := i.download(ctx, info.Dist.Tarball, name+"@"+version, archive); err != nil {
		return wrap(err)
	}
	if err := VerifyIntegrity(archive.Name(), info.Dist); err != nil {
		return wrap(err)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return wrap(fmt.Errorf("creating %s: %w", dest, err))
	}
	if err := ExtractTarball(archive.Name(), dest); err != nil {
		return wrap(err)
	}

	if i.installDeps && len(info.Dependencies) > 0 {
		warning, err := InstallNodeDeps(ctx, dest)
		if err != nil {
			return wrap(err)
		}
		if warning != "" {
			log.WithField("package", name).Warn(warning)
		}
	}

	log.WithFields(log.Fields{"package": name, "version": version, "dir": dest}).Debug("package installed")
	return nil
}

func (i *Installer) download(ctx context.Context, url, label string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", "stencil-cli")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	if i.progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(i.progress),
			progressbar.OptionSetDescription("Downloading "+label),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		dst = io.MultiWriter(dst, bar)
		defer bar.Finish()
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("reading download stream: %w", err)
	}
	return nil
}
