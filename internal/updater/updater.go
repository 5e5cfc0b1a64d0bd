package updater

import (
	"net/http"
	"time"

	"github.com/techpix-labs/create-techpix-app/internal/branding"
)

const (
	githubAPIBase = "https://api.github.com"
	// DefaultTimeout bounds a release lookup so a slow network never delays
	// the end of a run noticeably.
	DefaultTimeout = 2 * time.Second
)

// Release represents a GitHub release.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Checker looks up and caches the latest release.
type Checker struct {
	currentVersion string
	httpClient     *http.Client
	baseURL        string
	repo           string
	timeout        time.Duration
	maxAge         time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Checker) {
		u.httpClient = c
	}
}

// WithBaseURL points the checker at a different GitHub API endpoint.
func WithBaseURL(url string) Option {
	return func(u *Checker) {
		u.baseURL = url
	}
}

// WithMaxAge sets how long a cached result is trusted.
func WithMaxAge(d time.Duration) Option {
	return func(u *Checker) {
		u.maxAge = d
	}
}

// New creates a Checker for the given current version.
func New(currentVersion string, opts ...Option) *Checker {
	u := &Checker{
		currentVersion: currentVersion,
		httpClient:     http.DefaultClient,
		baseURL:        githubAPIBase,
		repo:           branding.GitHubRepo(),
		timeout:        DefaultTimeout,
		maxAge:         DefaultCacheMaxAge,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CurrentVersion returns the version this checker was created with.
func (u *Checker) CurrentVersion() string {
	return u.currentVersion
}
