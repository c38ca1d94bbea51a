package resolve

import (
	"context"
	"strconv"
	"strings"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/github"
)

// GitHubURLResolver parses a classified GitHubURL's path into a Git,
// GitHubPR, or GitHubActionArtifact descriptor (§4.3.2).
type GitHubURLResolver struct{}

func NewGitHubURLResolver() *GitHubURLResolver { return &GitHubURLResolver{} }

func (r *GitHubURLResolver) Name() string { return "GitHubResolver" }

func (r *GitHubURLResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGitHubURL}
}

func (r *GitHubURLResolver) Resolve(_ context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	gh, ok := d.(descriptor.GitHubURL)
	if !ok {
		return nil, nil
	}
	u := gh.URL.URL
	parts := splitPath(u.Path)
	if len(parts) < 2 {
		return nil, nil
	}
	repo := "https://github.com/" + parts[0] + "/" + parts[1]

	switch {
	case len(parts) == 2:
		return certainty.NewMaybeExists(descriptor.Git{Repo: repo, Ref: "HEAD"}), nil

	case len(parts) >= 4 && (parts[2] == "tree" || parts[2] == "blob"):
		return certainty.NewMaybeExists(descriptor.Git{Repo: repo, Ref: parts[3]}), nil

	case len(parts) == 4 && parts[2] == "pull":
		if _, err := strconv.Atoi(parts[3]); err != nil {
			return nil, nil
		}
		return certainty.NewMaybeExists(descriptor.GitHubPR{
			Installation: gh.Installation,
			URL:          gh.URL,
		}), nil

	case len(parts) == 7 && parts[2] == "actions" && parts[3] == "runs" && parts[5] == "artifacts":
		id, err := strconv.ParseInt(parts[6], 10, 64)
		if err != nil {
			return nil, nil
		}
		return certainty.NewMaybeExists(descriptor.GitHubActionArtifact{
			Installation: gh.Installation,
			Account:      parts[0],
			Repo:         parts[1],
			ArtifactID:   id,
		}), nil
	}

	return nil, nil
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// GistURLResolver parses a classified GistURL into a Git descriptor —
// Gist URLs are themselves cloneable git repositories.
type GistURLResolver struct{}

func NewGistURLResolver() *GistURLResolver { return &GistURLResolver{} }

func (r *GistURLResolver) Name() string { return "GistResolver" }

func (r *GistURLResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGistURL}
}

func (r *GistURLResolver) Resolve(_ context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	g, ok := d.(descriptor.GistURL)
	if !ok {
		return nil, nil
	}
	parts := splitPath(g.URL.URL.Path)
	if len(parts) != 2 {
		return nil, nil
	}
	return certainty.NewMaybeExists(descriptor.Git{Repo: g.URL.String(), Ref: "HEAD"}), nil
}

// GitLabURLResolver parses a classified GitLabURL into a Git descriptor
// (§4.3.2): `user/repo` or `user/repo/-/tree|blob/<ref>`.
type GitLabURLResolver struct{}

func NewGitLabURLResolver() *GitLabURLResolver { return &GitLabURLResolver{} }

func (r *GitLabURLResolver) Name() string { return "GitLabResolver" }

func (r *GitLabURLResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGitLabURL}
}

func (r *GitLabURLResolver) Resolve(_ context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	g, ok := d.(descriptor.GitLabURL)
	if !ok {
		return nil, nil
	}
	u := g.URL.URL
	parts := splitPath(u.Path)
	if len(parts) < 2 {
		return nil, nil
	}
	repo := u.Scheme + "://" + u.Host + "/" + parts[0] + "/" + parts[1]

	if len(parts) == 2 || len(parts) == 3 {
		return certainty.NewMaybeExists(descriptor.Git{Repo: repo, Ref: "HEAD"}), nil
	}

	// dash-delimited form: user/repo/-/tree/<ref> or .../-/blob/<ref>
	dashIdx := -1
	for i, p := range parts {
		if p == "-" {
			dashIdx = i
			break
		}
	}
	if dashIdx < 0 || dashIdx+2 >= len(parts) {
		return nil, nil
	}
	shape := parts[dashIdx+1]
	if shape != "tree" && shape != "blob" {
		return nil, nil
	}
	return certainty.NewMaybeExists(descriptor.Git{Repo: repo, Ref: parts[dashIdx+2]}), nil
}

// GitURLResolver recognizes pip-style VCS URL schemes (§4.4): git+https,
// git+ssh, git+git, git+http, git+file, and a bare git scheme. It never
// probes the remote.
type GitURLResolver struct{}

func NewGitURLResolver() *GitURLResolver { return &GitURLResolver{} }

func (r *GitURLResolver) Name() string { return "GitUrlResolver" }

func (r *GitURLResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindRawURL}
}

var gitVCSSchemes = map[string]bool{
	"git+https": true, "git+ssh": true, "git+git": true,
	"git+http": true, "git+file": true, "git": true,
}

func (r *GitURLResolver) Resolve(_ context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	raw, ok := d.(descriptor.RawURL)
	if !ok {
		return nil, nil
	}
	u := raw.URL.URL
	if u == nil || !gitVCSSchemes[strings.ToLower(u.Scheme)] {
		return nil, nil
	}

	repoScheme := strings.TrimPrefix(strings.ToLower(u.Scheme), "git+")
	if repoScheme == "git" {
		repoScheme = ""
	}

	path := descriptor.PathOrOpaque(u)
	ref := "HEAD"
	if idx := strings.LastIndex(path, "@"); idx >= 0 {
		ref = path[idx+1:]
		path = path[:idx]
	}

	repo := path
	if repoScheme != "" {
		repo = repoScheme + "://" + u.Host + path
	} else if u.Host != "" {
		repo = u.Host + path
	}

	return certainty.NewMaybeExists(descriptor.Git{Repo: repo, Ref: ref}), nil
}

// GitHubPRResolver calls the pulls API to resolve a pull request's head
// ref (§4.3.3 "GitHubPR resolver").
type GitHubPRResolver struct {
	Client  github.PRClient
	BaseURL string
}

// PRClient-compatible constructor kept free-standing to avoid importing
// net/http here; see internal/github for the concrete implementation.
func NewGitHubPRResolver(client github.PRClient, baseURL string) *GitHubPRResolver {
	return &GitHubPRResolver{Client: client, BaseURL: baseURL}
}

func (r *GitHubPRResolver) Name() string { return "GitHubPRResolver" }

func (r *GitHubPRResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGitHubPR}
}

func (r *GitHubPRResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	pr, ok := d.(descriptor.GitHubPR)
	if !ok {
		return nil, nil
	}
	parts := splitPath(pr.URL.URL.Path)
	if len(parts) != 4 || parts[2] != "pull" {
		return nil, nil
	}
	number, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, nil
	}

	head, err := r.Client.GetPullRequestHead(ctx, r.BaseURL, parts[0], parts[1], number)
	if err != nil {
		if err == github.ErrPullRequestNotFound {
			return certainty.NewDoesNotExist(descriptor.KindGit, "pull request not found: "+pr.URL.String()), nil
		}
		return nil, err
	}

	return certainty.NewMaybeExists(descriptor.Git{Repo: head.Repo, Ref: head.Ref}), nil
}
