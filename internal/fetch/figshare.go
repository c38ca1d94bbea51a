package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/httpio"
	"github.com/reporef/reporef/internal/rerrors"
)

// FigshareFetcher lists a pinned article version's files and downloads
// each concurrently.
type FigshareFetcher struct {
	Client     *http.Client
	Downloader *httpio.Downloader
}

func NewFigshareFetcher(client *http.Client, dl *httpio.Downloader) *FigshareFetcher {
	return &FigshareFetcher{Client: client, Downloader: dl}
}

func (f *FigshareFetcher) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindImmutableFigshareDataset}
}

type figshareFilesResponse struct {
	Files []struct {
		Name        string `json:"name"`
		DownloadURL string `json:"download_url"`
	} `json:"files"`
}

func (f *FigshareFetcher) Fetch(ctx context.Context, d descriptor.Descriptor, outputDir string) error {
	fd, ok := d.(descriptor.ImmutableFigshareDataset)
	if !ok {
		return nil
	}
	apiURL := strings.TrimRight(fd.Installation.APIURL.String(), "/")
	reqURL := fmt.Sprintf("%s/articles/%d/versions/%d", apiURL, fd.ArticleID, fd.Version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return rerrors.NewNetworkError(reqURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return rerrors.NewHTTPError(reqURL, resp.StatusCode)
	}

	var parsed figshareFilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return rerrors.Wrap(rerrors.CategoryNetwork, "decoding article file list", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)
	for _, file := range parsed.Files {
		file := file
		g.Go(func() error {
			dest := filepath.Join(outputDir, file.Name)
			return f.Downloader.Download(ctx, file.DownloadURL, dest)
		})
	}
	return g.Wait()
}
