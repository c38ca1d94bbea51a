package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/httpio"
	"github.com/reporef/reporef/internal/rerrors"
)

// ZenodoFetcher lists a record's files via Zenodo/Invenio's REST API and
// downloads each concurrently.
type ZenodoFetcher struct {
	Client     *http.Client
	Downloader *httpio.Downloader
}

func NewZenodoFetcher(client *http.Client, dl *httpio.Downloader) *ZenodoFetcher {
	return &ZenodoFetcher{Client: client, Downloader: dl}
}

func (f *ZenodoFetcher) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindZenodoDataset}
}

type zenodoRecordResponse struct {
	Files []struct {
		Key   string `json:"key"`
		Links struct {
			Self string `json:"self"`
		} `json:"links"`
	} `json:"files"`
}

func (f *ZenodoFetcher) Fetch(ctx context.Context, d descriptor.Descriptor, outputDir string) error {
	zd, ok := d.(descriptor.ZenodoDataset)
	if !ok {
		return nil
	}
	installation := zd.InstallationURL.String()
	reqURL := installation + "/api/records/" + zd.RecordID

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

	var parsed zenodoRecordResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return rerrors.Wrap(rerrors.CategoryNetwork, "decoding record file list", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)
	for _, file := range parsed.Files {
		file := file
		g.Go(func() error {
			dest := filepath.Join(outputDir, file.Key)
			return f.Downloader.Download(ctx, file.Links.Self, dest)
		})
	}
	return g.Wait()
}
