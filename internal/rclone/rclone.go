// Package rclone builds the rclone remote string and service account key
// file both the Google Drive resolver and fetcher shell out with, so the
// two don't drift on the anonymous-remote convention.
package rclone

import (
	"os"

	"github.com/reporef/reporef/internal/rerrors"
	"github.com/reporef/reporef/internal/secrets"
)

// KeyFile returns a path to a service account key JSON file, preferring
// override (set by callers that already have one, e.g. in tests) and
// otherwise writing the embedded built-in key to a fresh temp file. The
// returned cleanup must be called once the caller is done with the path.
func KeyFile(override string) (path string, cleanup func(), err error) {
	if override != "" {
		return override, func() {}, nil
	}

	key, err := secrets.GoogleDriveServiceAccountKey()
	if err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "reporef-drive-sa-*.json")
	if err != nil {
		return "", nil, rerrors.Wrap(rerrors.CategoryIO, "creating temp service account key file", err)
	}
	if _, err := f.Write(key); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, rerrors.Wrap(rerrors.CategoryIO, "writing temp service account key file", err)
	}
	f.Close()

	return f.Name(), func() { os.Remove(f.Name()) }, nil
}

// Remote builds the anonymous, config-free Drive remote rclone's
// `:backend,param=value:` on-the-fly connection-string syntax accepts
// (spec.md: `:drive,scope=drive.readonly,service_account_file=<path>:`).
// The folder is not part of the remote string; callers must scope to it
// with a separate `--drive-root-folder-id` argument.
func Remote(keyPath string) string {
	return ":drive,scope=drive.readonly,service_account_file=" + keyPath + ":"
}

// DriveRootFolderIDArgs returns the rclone flag pair that scopes a Drive
// remote built by Remote to a single root folder.
func DriveRootFolderIDArgs(folderID string) []string {
	return []string{"--drive-root-folder-id", folderID}
}
