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

func installFakeRclone(t *testing.T, stdout string, code int) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rclone")
	contents := "#!/bin/sh\ncat <<'EOF'\n" + stdout + "\nEOF\nexit " + itoa(code) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestGoogleDriveFolderResolver_Resolve(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(keyFile, []byte(`{}`), 0o600))

	t.Run("hashes listing", func(t *testing.T) {
		installFakeRclone(t, `[
			{"Path":"a.txt","IsDir":false,"Size":3,"ModTime":"2024-01-01T00:00:00Z","Hashes":{"md5":"aaa"}},
			{"Path":"sub","IsDir":true,"Size":0,"ModTime":"2024-01-01T00:00:00Z","Hashes":{}},
			{"Path":"sub/b.txt","IsDir":false,"Size":4,"ModTime":"2024-01-01T00:00:00Z","Hashes":{"md5":"bbb"}}
		]`, 0)

		r := &GoogleDriveFolderResolver{ServiceAccountKeyPath: keyFile}
		a, err := r.Resolve(context.Background(), descriptor.GoogleDriveFolder{ID: "folder123"})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.Exists, a.Level)
		folder := a.Descriptor.(descriptor.ImmutableGoogleDriveFolder)
		assert.Equal(t, "folder123", folder.ID)
		assert.NotEmpty(t, folder.DirHash)
	})

	t.Run("not found exit code", func(t *testing.T) {
		installFakeRclone(t, "", 3)
		r := &GoogleDriveFolderResolver{ServiceAccountKeyPath: keyFile}
		a, err := r.Resolve(context.Background(), descriptor.GoogleDriveFolder{ID: "missing"})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.DoesNotExist, a.Level)
	})

	t.Run("unrecognized failure", func(t *testing.T) {
		installFakeRclone(t, "", 1)
		r := &GoogleDriveFolderResolver{ServiceAccountKeyPath: keyFile}
		_, err := r.Resolve(context.Background(), descriptor.GoogleDriveFolder{ID: "x"})
		require.Error(t, err)
	})
}

func TestGoogleDriveFolderResolver_PrefersStrongerHash(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(keyFile, []byte(`{}`), 0o600))

	installFakeRclone(t, `[{"Path":"a.txt","IsDir":false,"Size":1,"ModTime":"2024-01-01T00:00:00Z","Hashes":{"md5":"weak","sha1":"stronger","sha256":"strongest"}}]`, 0)
	r := &GoogleDriveFolderResolver{ServiceAccountKeyPath: keyFile}
	a, err := r.Resolve(context.Background(), descriptor.GoogleDriveFolder{ID: "f"})
	require.NoError(t, err)
	withSHA256 := a.Descriptor.(descriptor.ImmutableGoogleDriveFolder).DirHash

	installFakeRclone(t, `[{"Path":"a.txt","IsDir":false,"Size":1,"ModTime":"2024-01-01T00:00:00Z","Hashes":{"md5":"weak","sha1":"stronger"}}]`, 0)
	r2 := &GoogleDriveFolderResolver{ServiceAccountKeyPath: keyFile}
	a2, err := r2.Resolve(context.Background(), descriptor.GoogleDriveFolder{ID: "f"})
	require.NoError(t, err)
	withSHA1 := a2.Descriptor.(descriptor.ImmutableGoogleDriveFolder).DirHash

	assert.NotEqual(t, withSHA256, withSHA1, "sha256 must be preferred over sha1 when both are present")
}

func TestGoogleDriveFolderResolver_Deterministic(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(keyFile, []byte(`{}`), 0o600))

	installFakeRclone(t, `[{"Path":"a.txt","IsDir":false,"Size":1,"ModTime":"2024-01-01T00:00:00Z","Hashes":{"md5":"xyz"}}]`, 0)
	r := &GoogleDriveFolderResolver{ServiceAccountKeyPath: keyFile}

	a1, err := r.Resolve(context.Background(), descriptor.GoogleDriveFolder{ID: "f"})
	require.NoError(t, err)
	a2, err := r.Resolve(context.Background(), descriptor.GoogleDriveFolder{ID: "f"})
	require.NoError(t, err)

	assert.Equal(t, a1.Descriptor.(descriptor.ImmutableGoogleDriveFolder).DirHash,
		a2.Descriptor.(descriptor.ImmutableGoogleDriveFolder).DirHash)
}
