package fetch

import (
	"context"
	"fmt"

	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/httpio"
)

// hydroshareHost mirrors resolve.WellKnownResolver's default
// HydroshareHost: Hydroshare is a single hosted service, not a catalog of
// installations like Dataverse or Figshare.
const hydroshareHost = "www.hydroshare.org"

// HydroshareFetcher downloads a resource's BagIt zip (the one archive
// that contains every file plus Hydroshare's metadata) and extracts it.
type HydroshareFetcher struct {
	Downloader *httpio.Downloader
}

func NewHydroshareFetcher(dl *httpio.Downloader) *HydroshareFetcher {
	return &HydroshareFetcher{Downloader: dl}
}

func (f *HydroshareFetcher) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindHydroshareDataset}
}

func (f *HydroshareFetcher) Fetch(ctx context.Context, d descriptor.Descriptor, outputDir string) error {
	hd, ok := d.(descriptor.HydroshareDataset)
	if !ok {
		return nil
	}
	bagURL := fmt.Sprintf("https://%s/hsapi/resource/%s/bag/", hydroshareHost, hd.ResourceID)
	return downloadAndExtract(ctx, f.Downloader, bagURL, "application/zip", outputDir)
}
