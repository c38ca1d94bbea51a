package fetch

import (
	"net/http"

	"github.com/vbauerster/mpb/v8"

	"github.com/reporef/reporef/internal/config"
	"github.com/reporef/reporef/internal/github"
	"github.com/reporef/reporef/internal/httpio"
)

const defaultGitHubAPIBaseURL = "https://api.github.com"

// NewDefaultDispatcher builds the Dispatcher reporef's CLI uses,
// mirroring resolve.NewDefaultRegistry's dependency-assembly shape:
// one function building every concrete collaborator from *config.Config
// before handing them to the command layer.
func NewDefaultDispatcher(cfg *config.Config, progress *mpb.Progress) *Dispatcher {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	token := github.TokenFromEnv()
	githubAPIBaseURL := cfg.GitHubAPIBaseURL
	if githubAPIBaseURL == "" {
		githubAPIBaseURL = defaultGitHubAPIBaseURL
	}
	ghHTTPClient := github.NewHTTPClient(token, github.APIBaseHost(githubAPIBaseURL))
	ghHTTPClient.Timeout = cfg.HTTPTimeout

	downloader := httpio.NewDownloader(httpClient, progress)

	return NewDispatcher(
		NewGitFetcher(),
		NewDataverseFetcher(httpClient, downloader),
		NewZenodoFetcher(httpClient, downloader),
		NewFigshareFetcher(httpClient, downloader),
		NewHydroshareFetcher(downloader),
		NewCKANFetcher(httpClient, downloader),
		NewGoogleDriveFetcher(),
		NewCompressedFileFetcher(downloader),
		NewGitHubActionArtifactFetcher(ghHTTPClient, githubAPIBaseURL),
	)
}
