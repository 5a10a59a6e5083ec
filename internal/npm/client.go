package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Registry base URLs.
const (
	OfficialRegistry = "https://registry.npmjs.org"
	MirrorRegistry   = "https://registry.npmmirror.com"
)

// DefaultRegistryURL returns the official registry or the regional mirror.
func DefaultRegistryURL(useOfficial bool) string {
	if useOfficial {
		return OfficialRegistry
	}
	return MirrorRegistry
}

// PackageInfo is the document served at GET <registry>/<name>.
type PackageInfo struct {
	Name     string                  `json:"name"`
	DistTags map[string]string       `json:"dist-tags"`
	Versions map[string]*VersionInfo `json:"versions"`
}

// VersionInfo is the document served at GET <registry>/<name>/<version>.
type VersionInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Main         string            `json:"main,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Dist         Dist              `json:"dist"`
}

// Dist describes where a version's tarball lives and how to verify it.
type Dist struct {
	Tarball   string `json:"tarball"`
	Shasum    string `json:"shasum"`
	Integrity string `json:"integrity,omitempty"`
}

// Client talks to one registry.
type Client struct {
	registry   string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithRegistry sets the registry base URL. An empty value keeps the default.
func WithRegistry(url string) Option {
	return func(cl *Client) {
		if url != "" {
			cl.registry = strings.TrimRight(url, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a Client for the official registry unless WithRegistry says otherwise.
func New(opts ...Option) *Client {
	c := &Client{
		registry:   OfficialRegistry,
		httpClient: http.DefaultClient,
		userAgent:  "stencil-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the base URL this client queries.
func (c *Client) Registry() string {
	return c.registry
}

// FetchInfo fetches the full metadata document for name.
func (c *Client) FetchInfo(ctx context.Context, name string) (*PackageInfo, error) {
	var info PackageInfo
	if err := c.getJSON(ctx, name, c.registry+"/"+name, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchVersion fetches the metadata of one published version.
func (c *Client) FetchVersion(ctx context.Context, name, version string) (*VersionInfo, error) {
	var info VersionInfo
	if err := c.getJSON(ctx, name, c.registry+"/"+name+"/"+version, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchLatestVersion returns the highest published version of name under
// semver ordering. It performs exactly one request.
func (c *Client) FetchLatestVersion(ctx context.Context, name string) (string, error) {
	info, err := c.FetchInfo(ctx, name)
	if err != nil {
		return "", err
	}
	versions := sortedVersions(info.Versions)
	if len(versions) == 0 {
		return "", &RegistryError{Name: name, Err: ErrNoVersions}
	}
	return versions[0].Original(), nil
}

// NewerVersions returns every published version of name greater than base,
// highest first.
func (c *Client) NewerVersions(ctx context.Context, name, base string) ([]string, error) {
	baseVersion, err := parseVersion(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base version %q: %w", base, err)
	}

	info, err := c.FetchInfo(ctx, name)
	if err != nil {
		return nil, err
	}

	var newer []string
	for _, v := range sortedVersions(info.Versions) {
		if v.GreaterThan(baseVersion) {
			newer = append(newer, v.Original())
		}
	}
	return newer, nil
}

func (c *Client) getJSON(ctx context.Context, name, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &RegistryError{Name: name, URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RegistryError{Name: name, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RegistryError{Name: name, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RegistryError{Name: name, URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RegistryError{Name: name, URL: url, Err: fmt.Errorf("parsing registry JSON: %w", err)}
	}
	return nil
}
