package resolve

import (
	"net/http"

	"github.com/reporef/reporef/internal/catalog"
	"github.com/reporef/reporef/internal/config"
	"github.com/reporef/reporef/internal/github"
	"github.com/reporef/reporef/internal/secrets"
)

const defaultGitHubAPIBaseURL = "https://api.github.com"

// NewDefaultRegistry assembles the full resolver chain in precedence
// order (§4.3): the well-known classifier and DOI/VCS-scheme recognizers
// feed into provider-specific parsers, which feed into the
// mutable-to-immutable confirmers, with the feature-detect battery last.
func NewDefaultRegistry(cfg *config.Config, cat *catalog.Catalog) *Registry {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	token := github.TokenFromEnv()
	if token == "" {
		if t, err := secrets.GitHubToken(); err == nil {
			token = t
		}
	}
	githubAPIBaseURL := cfg.GitHubAPIBaseURL
	if githubAPIBaseURL == "" {
		githubAPIBaseURL = defaultGitHubAPIBaseURL
	}
	ghHTTPClient := github.NewHTTPClient(token, github.APIBaseHost(githubAPIBaseURL))
	ghHTTPClient.Timeout = cfg.HTTPTimeout
	ghClient := github.NewClient(ghHTTPClient)

	return NewRegistry(
		NewWellKnownResolver(cat),
		NewDoiResolver(httpClient),
		NewGitURLResolver(),

		NewGitHubURLResolver(),
		NewGistURLResolver(),
		NewGitLabURLResolver(),
		NewZenodoResolver(httpClient),
		NewFigshareURLResolver(cat.Figshare),
		NewDataverseResolver(httpClient),

		NewGitHubPRResolver(ghClient, githubAPIBaseURL),
		NewImmutableGitResolver(),
		NewImmutableFigshareResolver(httpClient),
		NewGoogleDriveFolderResolver(),

		NewFeatureDetectResolver(httpClient),
	)
}
