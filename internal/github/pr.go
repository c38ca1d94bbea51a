package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PullRequestHead describes the head ref a GitHub pull request points at.
type PullRequestHead struct {
	Ref  string
	Repo string // clone URL of the head repository
}

// pullRequestResponse is the subset of the GitHub pulls API this package
// needs.
type pullRequestResponse struct {
	Head struct {
		Ref  string `json:"ref"`
		Repo struct {
			CloneURL string `json:"clone_url"`
		} `json:"repo"`
	} `json:"head"`
}

// ErrPullRequestNotFound is returned when the GitHub API reports 404 for a
// pull request lookup.
var ErrPullRequestNotFound = fmt.Errorf("pull request not found")

// PRClient is the narrow interface the GitHubPR resolver depends on,
// letting resolver tests substitute a fake without standing up an
// http.Client/http.RoundTripper pair.
type PRClient interface {
	GetPullRequestHead(ctx context.Context, baseURL, owner, repo string, number int) (*PullRequestHead, error)
}

// Client wraps an *http.Client as a PRClient.
type Client struct {
	HTTP *http.Client
}

// NewClient builds a Client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{HTTP: httpClient}
}

// GetPullRequestHead implements PRClient.
func (c *Client) GetPullRequestHead(ctx context.Context, baseURL, owner, repo string, number int) (*PullRequestHead, error) {
	return GetPullRequestHead(ctx, c.HTTP, baseURL, owner, repo, number)
}

// GetPullRequestHead fetches a pull request's head ref and repository
// clone URL from baseURL (normally https://api.github.com, overridable for
// GitHub Enterprise installations). Returns ErrPullRequestNotFound when the
// API responds 404.
func GetPullRequestHead(ctx context.Context, client *http.Client, baseURL, owner, repo string, number int) (*PullRequestHead, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", baseURL, owner, repo, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPullRequestNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d for %s/%s#%d", resp.StatusCode, owner, repo, number)
	}

	var pr pullRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decoding pull request response: %w", err)
	}

	return &PullRequestHead{Ref: pr.Head.Ref, Repo: pr.Head.Repo.CloneURL}, nil
}
