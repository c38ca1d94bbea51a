package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// archiveKind is the concrete container format behind a CompressedFile's
// mime_type, narrowed down from the handful MIME types the fetchers that
// download archives (Zenodo, Figshare, GitHub Action artifacts) actually
// encounter.
type archiveKind string

const (
	archiveZip   archiveKind = "zip"
	archiveTarGz archiveKind = "tar.gz"
	archiveTarXz archiveKind = "tar.xz"
)

// detectArchiveKind maps a MIME type, falling back to a URL/filename
// suffix, to the archiveKind extractArchive knows how to handle. An empty
// return means "not a recognized archive": the caller should treat the
// download as an opaque file instead.
func detectArchiveKind(mimeType, nameHint string) archiveKind {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "application/zip", "application/x-zip-compressed":
		return archiveZip
	case "application/gzip", "application/x-gzip", "application/x-tar-gz":
		return archiveTarGz
	case "application/x-xz", "application/x-tar-xz":
		return archiveTarXz
	}

	lower := strings.ToLower(filepath.Base(nameHint))
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return archiveZip
	case strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz"):
		return archiveTarGz
	case strings.HasSuffix(lower, ".tar.xz") || strings.HasSuffix(lower, ".txz"):
		return archiveTarXz
	}
	return ""
}

// extractArchive extracts the archive at archivePath (opened fresh, since
// zip extraction needs random access) into destDir.
func extractArchive(kind archiveKind, archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", archivePath, err)
	}
	defer f.Close()

	slog.Debug("extracting archive", "kind", kind, "dest", destDir)

	switch kind {
	case archiveTarGz:
		gr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gr.Close()
		return extractTar(gr, destDir)
	case archiveTarXz:
		xr, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("creating xz reader: %w", err)
		}
		return extractTar(xr, destDir)
	case archiveZip:
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat %s: %w", archivePath, err)
		}
		return extractZip(f, info.Size(), destDir)
	default:
		return fmt.Errorf("unsupported archive kind: %s", kind)
	}
}

func extractTar(r io.Reader, destDir string) error {
	tr := tar.NewReader(r)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}
		if isArchiveMetadataPath(hdr.Name) {
			continue
		}

		target := filepath.Join(destDir, hdr.Name)
		if !isInsideDir(destDir, target) {
			return fmt.Errorf("invalid file path in archive: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
		case tar.TypeReg:
			if err := writeExtractedFile(tr, target, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			linkTarget := filepath.Join(filepath.Dir(target), hdr.Linkname)
			if !isInsideDir(destDir, linkTarget) {
				return fmt.Errorf("invalid symlink target: %s -> %s", hdr.Name, hdr.Linkname)
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink: %w", err)
			}
		}
	}
}

func extractZip(r io.ReaderAt, size int64, destDir string) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}

	for _, f := range zr.File {
		if isArchiveMetadataPath(f.Name) {
			continue
		}

		target := filepath.Join(destDir, f.Name)
		if !isInsideDir(destDir, target) {
			return fmt.Errorf("invalid file path in archive: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode()); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}
		err = writeExtractedFile(rc, target, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeExtractedFile(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

// isArchiveMetadataPath skips the __MACOSX resource-fork tree that macOS
// zip tools inject, never content a caller asked to fetch.
func isArchiveMetadataPath(name string) bool {
	return name == "__MACOSX" || strings.HasPrefix(name, "__MACOSX/")
}

// isInsideDir reports whether target resolves to a path under baseDir,
// guarding archive extraction against path traversal (../, absolute
// entry names).
func isInsideDir(baseDir, target string) bool {
	rel, err := filepath.Rel(baseDir, target)
	if err != nil {
		return false
	}
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
