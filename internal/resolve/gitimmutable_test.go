package resolve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

// installFakeGit writes an executable named "git" that prints script to
// stdout/stderr and exits with code, prepending its directory to PATH for
// the duration of the test.
func installFakeGit(t *testing.T, script string, code int) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "git")
	contents := "#!/bin/sh\n" + script + "\nexit " + itoa(code) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestImmutableGitResolver_Resolve(t *testing.T) {
	r := NewImmutableGitResolver()

	t.Run("resolves to sha", func(t *testing.T) {
		installFakeGit(t, `echo "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef	HEAD"`, 0)
		a, err := r.Resolve(context.Background(), descriptor.Git{Repo: "https://example.com/foo/bar.git", Ref: "HEAD"})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.Exists, a.Level)
		ig := a.Descriptor.(descriptor.ImmutableGit)
		assert.Equal(t, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", ig.Ref)
	})

	t.Run("repo not found", func(t *testing.T) {
		installFakeGit(t, `echo "fatal: repository 'https://example.com/nope.git' not found" 1>&2`, 128)
		a, err := r.Resolve(context.Background(), descriptor.Git{Repo: "https://example.com/nope.git", Ref: "HEAD"})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.DoesNotExist, a.Level)
	})

	t.Run("unrecognized failure", func(t *testing.T) {
		installFakeGit(t, `echo "fatal: something else went wrong" 1>&2`, 1)
		_, err := r.Resolve(context.Background(), descriptor.Git{Repo: "https://example.com/foo.git", Ref: "HEAD"})
		require.Error(t, err)
	})

	t.Run("empty output sha-shaped ref", func(t *testing.T) {
		installFakeGit(t, `true`, 0)
		sha := "cafebabecafebabecafebabecafebabecafebabe"
		a, err := r.Resolve(context.Background(), descriptor.Git{Repo: "https://example.com/foo.git", Ref: sha})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.MaybeExists, a.Level)
	})

	t.Run("empty output non-sha ref", func(t *testing.T) {
		installFakeGit(t, `true`, 0)
		a, err := r.Resolve(context.Background(), descriptor.Git{Repo: "https://example.com/foo.git", Ref: "nonexistent-branch"})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.DoesNotExist, a.Level)
	})
}
