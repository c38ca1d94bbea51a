package resolve

import (
	"context"
	"regexp"
	"strings"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/procexec"
	"github.com/reporef/reporef/internal/rerrors"
)

var shaPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)
var repoNotFoundPattern = regexp.MustCompile(`fatal: repository '.+' not found`)

// ImmutableGitResolver invokes `git ls-remote` to confirm a Git
// descriptor's ref and, where possible, pin it to a commit SHA (§4.3.3
// "ImmutableGit resolver").
type ImmutableGitResolver struct{}

func NewImmutableGitResolver() *ImmutableGitResolver { return &ImmutableGitResolver{} }

func (r *ImmutableGitResolver) Name() string { return "ImmutableGitResolver" }

func (r *ImmutableGitResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGit}
}

func (r *ImmutableGitResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	g, ok := d.(descriptor.Git)
	if !ok {
		return nil, nil
	}

	res, err := procexec.Run(ctx, "git", "ls-remote", "--", g.Repo, g.Ref)
	if err != nil {
		return nil, err
	}

	if res.ExitCode != 0 {
		if repoNotFoundPattern.MatchString(res.Stderr) {
			return certainty.NewDoesNotExist(descriptor.KindImmutableGit,
				"Could not access git repository at "+g.Repo), nil
		}
		return nil, rerrors.NewProcessError([]string{"git", "ls-remote", "--", g.Repo, g.Ref}, res.ExitCode, res.Stdout, res.Stderr)
	}

	stdout := strings.TrimSpace(res.Stdout)
	if stdout == "" {
		if shaPattern.MatchString(g.Ref) {
			return certainty.NewMaybeExists(descriptor.ImmutableGit{Repo: g.Repo, Ref: g.Ref}), nil
		}
		return certainty.NewDoesNotExist(descriptor.KindImmutableGit,
			"ref "+g.Ref+" not found in "+g.Repo), nil
	}

	firstLine := stdout
	if idx := strings.IndexByte(stdout, '\n'); idx >= 0 {
		firstLine = stdout[:idx]
	}
	fields := strings.Split(firstLine, "\t")
	sha := fields[0]

	return certainty.NewExists(descriptor.ImmutableGit{Repo: g.Repo, Ref: sha}), nil
}
