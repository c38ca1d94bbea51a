package fetch

import (
	"context"

	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/procexec"
	"github.com/reporef/reporef/internal/rerrors"
)

// GitFetcher materializes a Git or ImmutableGit descriptor by shelling
// out to the git binary (§4.7 "subprocess exec"), never go-git: a blobless
// partial clone followed by a checkout of the exact ref, matching the
// original system's `git clone --filter=tree:0 --recurse-submodules` then
// `git checkout <ref>` invocation.
type GitFetcher struct{}

func NewGitFetcher() *GitFetcher { return &GitFetcher{} }

func (f *GitFetcher) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGit, descriptor.KindImmutableGit}
}

func (f *GitFetcher) Fetch(ctx context.Context, d descriptor.Descriptor, outputDir string) error {
	var repo, ref string
	switch g := d.(type) {
	case descriptor.Git:
		repo, ref = g.Repo, g.Ref
	case descriptor.ImmutableGit:
		repo, ref = g.Repo, g.Ref
	default:
		return nil
	}

	cloneArgs := []string{"clone", "--filter=tree:0", "--recurse-submodules", repo, outputDir}
	res, err := procexec.Run(ctx, "git", cloneArgs...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return rerrors.NewProcessError(append([]string{"git"}, cloneArgs...), res.ExitCode, res.Stdout, res.Stderr)
	}

	checkoutArgs := []string{"-C", outputDir, "checkout", ref}
	res, err = procexec.Run(ctx, "git", checkoutArgs...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return rerrors.NewProcessError(append([]string{"git"}, checkoutArgs...), res.ExitCode, res.Stdout, res.Stderr)
	}
	return nil
}
