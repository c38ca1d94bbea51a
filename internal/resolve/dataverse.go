package resolve

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/rerrors"
)

// DataverseResolver parses a classified DataverseURL's query string or
// path into the dataset it belongs to, verifying an unconfirmed
// persistent ID against the datasets API and always resolving to the
// containing dataset, never to an individual file (§4.3.3 "Dataverse
// resolver").
type DataverseResolver struct {
	Client *http.Client
}

func NewDataverseResolver(client *http.Client) *DataverseResolver {
	return &DataverseResolver{Client: client}
}

func (r *DataverseResolver) Name() string { return "DataverseResolver" }

func (r *DataverseResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindDataverseURL}
}

type datasetLookupResponse struct {
	Status string `json:"status"`
}

type fileLookupResponse struct {
	Status string `json:"status"`
	Data   struct {
		DatasetPersistentID string `json:"datasetPersistentId"`
	} `json:"data"`
}

func (r *DataverseResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	dv, ok := d.(descriptor.DataverseURL)
	if !ok {
		return nil, nil
	}
	u := dv.URL.URL
	installation := strings.TrimRight(dv.Installation.String(), "/")

	var persistentID string
	var fileID string

	switch {
	case strings.Contains(u.Path, "/citation") || strings.Contains(u.Path, "dataset.xhtml"):
		persistentID = u.Query().Get("persistentId")
	case strings.Contains(u.Path, "/api/access/datafile"):
		parts := splitPath(u.Path)
		fileID = parts[len(parts)-1]
	case strings.Contains(u.Path, "file.xhtml"):
		persistentID = u.Query().Get("persistentId")
		fileID = u.Query().Get("fileId")
	default:
		return nil, nil
	}

	if persistentID != "" {
		ok, err := r.datasetExists(ctx, installation, persistentID)
		if err != nil {
			return nil, err
		}
		if ok {
			return certainty.NewExists(descriptor.DataverseDataset{
				InstallationURL: dv.Installation,
				PersistentID:    persistentID,
			}), nil
		}
		// Falls through: the "persistent ID" may actually have been a
		// file ID; try the file lookup instead.
		fileID = persistentID
		persistentID = ""
	}

	if fileID != "" {
		containingID, err := r.datasetIDFromFileID(ctx, installation, fileID)
		if err != nil {
			return nil, err
		}
		if containingID == "" {
			return certainty.NewDoesNotExist(descriptor.KindDataverseDataset, "no dataset found for file "+fileID), nil
		}
		return certainty.NewExists(descriptor.DataverseDataset{
			InstallationURL: dv.Installation,
			PersistentID:    containingID,
		}), nil
	}

	return certainty.NewDoesNotExist(descriptor.KindDataverseDataset, "could not determine dataset for "+u.String()), nil
}

func (r *DataverseResolver) datasetExists(ctx context.Context, installation, persistentID string) (bool, error) {
	reqURL := installation + "/api/datasets/:persistentId?persistentId=" + persistentID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return false, rerrors.NewNetworkError(reqURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, rerrors.NewHTTPError(reqURL, resp.StatusCode)
	}
}

func (r *DataverseResolver) datasetIDFromFileID(ctx context.Context, installation, fileID string) (string, error) {
	reqURL := installation + "/api/files/" + fileID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", rerrors.NewNetworkError(reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", rerrors.NewHTTPError(reqURL, resp.StatusCode)
	}

	var parsed fileLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", rerrors.Wrap(rerrors.CategoryNetwork, "decoding file lookup response", err)
	}
	return parsed.Data.DatasetPersistentID, nil
}
