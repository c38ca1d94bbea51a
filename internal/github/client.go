// Package github provides GitHub-aware HTTP client with token authentication.
//
// It reads GITHUB_TOKEN or GH_TOKEN from environment variables and creates
// an http.Client that automatically adds Authorization headers to requests
// for GitHub hosts. This increases the GitHub API rate limit from 60 to 5,000
// requests per hour and enables access to private repositories.
package github

import (
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	// envGitHubToken is the primary environment variable for GitHub token.
	envGitHubToken = "GITHUB_TOKEN"
	// envGHToken is the fallback environment variable for GitHub token (used by gh CLI).
	envGHToken = "GH_TOKEN"

	// hostGitHub is the main GitHub domain.
	hostGitHub = "github.com"
	// hostGitHubAPI is the GitHub API domain.
	hostGitHubAPI = "api.github.com"
	// suffixGitHub is the suffix for GitHub subdomains (e.g., uploads.github.com).
	suffixGitHub = ".github.com"
	// suffixGitHubusercontent is the suffix for GitHub content delivery domains
	// (e.g., raw.githubusercontent.com, objects.githubusercontent.com).
	suffixGitHubusercontent = ".githubusercontent.com"
)

// APIBaseHost extracts the host component from a configured GitHub API
// base URL, for passing to NewHTTPClient's enterpriseHosts so a GitHub
// Enterprise Server instance configured there gets the same Bearer token
// a *.github.com request would. Returns "" for an unparseable URL.
func APIBaseHost(apiBaseURL string) string {
	u, err := url.Parse(apiBaseURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// TokenFromEnv reads GITHUB_TOKEN or GH_TOKEN from environment.
// GITHUB_TOKEN takes precedence. Returns empty string if neither is set.
func TokenFromEnv() string {
	if t := os.Getenv(envGitHubToken); t != "" {
		return t
	}
	return os.Getenv(envGHToken)
}

// NewHTTPClient creates an http.Client that adds Authorization header
// to requests for GitHub hosts (api.github.com, github.com,
// *.githubusercontent.com) plus any enterpriseHosts given, which
// GitHub Enterprise installations reached through a configured
// GitHubAPIBaseURL (e.g. github.example.com) need to pass the same
// Bearer token even though they don't match the *.github.com suffixes.
// If token is empty, returns a plain client with timeout.
func NewHTTPClient(token string, enterpriseHosts ...string) *http.Client {
	return &http.Client{
		Timeout: defaultTimeout,
		Transport: &tokenTransport{
			token:           token,
			base:            http.DefaultTransport,
			enterpriseHosts: enterpriseHosts,
		},
	}
}

// tokenTransport adds Bearer token to GitHub requests.
type tokenTransport struct {
	token           string
	base            http.RoundTripper
	enterpriseHosts []string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" && isGitHubHost(req.URL.Host, t.enterpriseHosts) {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(req)
}

// isGitHubHost checks if the host is a GitHub domain, or one of the
// caller-supplied enterprise hosts (matched case-insensitively, host
// only, no port comparison since GitHub Enterprise Server is reached
// over plain 443/80).
// Matches: api.github.com, github.com, raw.githubusercontent.com,
// objects.githubusercontent.com, etc.
func isGitHubHost(host string, enterpriseHosts []string) bool {
	host = strings.ToLower(host)
	if host == hostGitHub || host == hostGitHubAPI {
		return true
	}
	if strings.HasSuffix(host, suffixGitHub) {
		return true
	}
	if strings.HasSuffix(host, suffixGitHubusercontent) {
		return true
	}
	for _, h := range enterpriseHosts {
		if host == strings.ToLower(h) {
			return true
		}
	}
	return false
}
