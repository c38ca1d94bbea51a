package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/httpio"
	"github.com/reporef/reporef/internal/rerrors"
)

// CKANFetcher lists a package's resources via the CKAN action API and
// downloads each concurrently.
type CKANFetcher struct {
	Client     *http.Client
	Downloader *httpio.Downloader
}

func NewCKANFetcher(client *http.Client, dl *httpio.Downloader) *CKANFetcher {
	return &CKANFetcher{Client: client, Downloader: dl}
}

func (f *CKANFetcher) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindCKANDataset}
}

type ckanPackageShowResponse struct {
	Result struct {
		Resources []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"resources"`
	} `json:"result"`
}

func (f *CKANFetcher) Fetch(ctx context.Context, d descriptor.Descriptor, outputDir string) error {
	ck, ok := d.(descriptor.CKANDataset)
	if !ok {
		return nil
	}
	installation := ck.InstallationURL.String()
	reqURL := installation + "/api/3/action/package_show?id=" + ck.DatasetID

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

	var parsed ckanPackageShowResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return rerrors.Wrap(rerrors.CategoryNetwork, "decoding package resource list", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)
	for i, resource := range parsed.Result.Resources {
		resource := resource
		name := resource.Name
		if name == "" {
			name = filepath.Base(resource.URL)
		}
		idx := i
		g.Go(func() error {
			dest := filepath.Join(outputDir, uniqueName(idx, name))
			return f.Downloader.Download(ctx, resource.URL, dest)
		})
	}
	return g.Wait()
}

// uniqueName prefixes name with idx when name is empty, so a resource
// with neither a name nor a URL path still lands on a distinct file.
func uniqueName(idx int, name string) string {
	if name != "" && name != "." && name != "/" {
		return name
	}
	return fmt.Sprintf("resource-%d", idx)
}
