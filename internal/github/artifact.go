package github

import (
	"context"
	"fmt"
	"net/http"
)

// ArtifactDownloadURL returns the GitHub Actions API endpoint that
// redirects to a time-limited, signed zip download for the given artifact.
// GitHub responds to this endpoint with a 302 to a storage URL; callers
// following redirects (the default for http.Client) receive the archive
// bytes directly.
func ArtifactDownloadURL(baseURL, owner, repo string, artifactID int64) string {
	return fmt.Sprintf("%s/repos/%s/%s/actions/artifacts/%d/zip", baseURL, owner, repo, artifactID)
}

// DownloadArtifact issues the request for ArtifactDownloadURL and returns
// the response body for the caller to stream to disk. The caller is
// responsible for closing resp.Body.
func DownloadArtifact(ctx context.Context, client *http.Client, baseURL, owner, repo string, artifactID int64) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ArtifactDownloadURL(baseURL, owner, repo, artifactID), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching artifact: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GitHub API returned status %d for artifact %d of %s/%s", resp.StatusCode, artifactID, owner, repo)
	}
	return resp, nil
}
