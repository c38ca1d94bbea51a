package fetch

import (
	"context"

	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/procexec"
	"github.com/reporef/reporef/internal/rclone"
	"github.com/reporef/reporef/internal/rerrors"
)

// GoogleDriveFetcher copies a Drive folder's contents down with
// `rclone copy`, the fetch-side analog of the resolver's `rclone lsjson`
// pass, against the same anonymous service-account-authenticated remote.
type GoogleDriveFetcher struct {
	// ServiceAccountKeyPath overrides the embedded key's temp file path,
	// for tests.
	ServiceAccountKeyPath string
}

func NewGoogleDriveFetcher() *GoogleDriveFetcher { return &GoogleDriveFetcher{} }

func (f *GoogleDriveFetcher) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGoogleDriveFolder, descriptor.KindImmutableGoogleDriveFolder}
}

func (f *GoogleDriveFetcher) Fetch(ctx context.Context, d descriptor.Descriptor, outputDir string) error {
	var id string
	switch folder := d.(type) {
	case descriptor.GoogleDriveFolder:
		id = folder.ID
	case descriptor.ImmutableGoogleDriveFolder:
		id = folder.ID
	default:
		return nil
	}

	keyPath, cleanup, err := rclone.KeyFile(f.ServiceAccountKeyPath)
	if err != nil {
		return err
	}
	defer cleanup()

	args := append([]string{"copy", rclone.Remote(keyPath), outputDir}, rclone.DriveRootFolderIDArgs(id)...)
	res, err := procexec.Run(ctx, "rclone", args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return rerrors.NewProcessError(append([]string{"rclone"}, args...), res.ExitCode, res.Stdout, res.Stderr)
	}
	return nil
}
