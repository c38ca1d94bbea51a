package resolve

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/dirhash"
	"github.com/reporef/reporef/internal/procexec"
	"github.com/reporef/reporef/internal/rclone"
	"github.com/reporef/reporef/internal/rerrors"
)

// GoogleDriveFolderResolver pins a GoogleDriveFolder to a content hash
// over its recursive listing by shelling out to `rclone lsjson --recursive`
// against an anonymous Drive remote authenticated with the built-in
// service account key (§4.3.3 "Google Drive resolver").
type GoogleDriveFolderResolver struct {
	// ServiceAccountKeyPath overrides where the embedded key is written;
	// empty means use a fresh os.CreateTemp file each call.
	ServiceAccountKeyPath string
}

func NewGoogleDriveFolderResolver() *GoogleDriveFolderResolver {
	return &GoogleDriveFolderResolver{}
}

func (r *GoogleDriveFolderResolver) Name() string { return "GoogleDriveFolderResolver" }

func (r *GoogleDriveFolderResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindGoogleDriveFolder}
}

type driveListEntry struct {
	Path    string `json:"Path"`
	IsDir   bool   `json:"IsDir"`
	Size    int64  `json:"Size"`
	ModTime string `json:"ModTime"`
	Hashes  struct {
		SHA256 string `json:"sha256"`
		SHA1   string `json:"sha1"`
		MD5    string `json:"md5"`
	} `json:"Hashes"`
}

func (r *GoogleDriveFolderResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	folder, ok := d.(descriptor.GoogleDriveFolder)
	if !ok {
		return nil, nil
	}

	keyPath, cleanup, err := rclone.KeyFile(r.ServiceAccountKeyPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := append([]string{"lsjson", rclone.Remote(keyPath), "--recursive", "--hash"},
		rclone.DriveRootFolderIDArgs(folder.ID)...)
	res, err := procexec.Run(ctx, "rclone", args...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		if res.ExitCode == 3 || res.ExitCode == 4 {
			return certainty.NewDoesNotExist(descriptor.KindImmutableGoogleDriveFolder,
				"Google Drive folder not found or not shared publicly: "+folder.ID), nil
		}
		return nil, rerrors.NewProcessError(append([]string{"rclone"}, args...), res.ExitCode, res.Stdout, res.Stderr)
	}

	var entries []driveListEntry
	if err := json.Unmarshal([]byte(res.Stdout), &entries); err != nil {
		return nil, rerrors.Wrap(rerrors.CategoryProcess, "decoding rclone lsjson output", err)
	}

	paths := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		digest := e.Hashes.SHA256
		if digest == "" {
			digest = e.Hashes.SHA1
		}
		if digest == "" {
			digest = e.Hashes.MD5
		}
		if digest == "" {
			digest = e.ModTime + ":" + strconv.FormatInt(e.Size, 10)
		}
		paths[e.Path] = digest
	}

	return certainty.NewExists(descriptor.ImmutableGoogleDriveFolder{
		ID:      folder.ID,
		DirHash: dirhash.Hash(paths),
	}), nil
}
