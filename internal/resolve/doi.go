package resolve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/rerrors"
)

// handleAPIBase is the Handle System REST endpoint (§6 "Network protocols
// consumed").
const handleAPIBase = "https://doi.org/api/handles/"

var doiHosts = map[string]bool{
	"doi.org":          true,
	"www.doi.org":      true,
	"hdl.handle.net":   true,
}

type handleValue struct {
	Type string `json:"type"`
	Data struct {
		Value string `json:"value"`
	} `json:"data"`
}

type handleResponse struct {
	ResponseCode int           `json:"responseCode"`
	Values       []handleValue `json:"values"`
}

// DoiResolver dereferences a DOI/handle into its target URL (§4.3.3 "DOI
// resolver").
type DoiResolver struct {
	Client *http.Client
	// BaseURL overrides handleAPIBase; tests point this at an httptest
	// server instead of the real Handle System.
	BaseURL string
}

func NewDoiResolver(client *http.Client) *DoiResolver {
	return &DoiResolver{Client: client, BaseURL: handleAPIBase}
}

func (r *DoiResolver) Name() string { return "DoiResolver" }

func (r *DoiResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindRawURL}
}

func (r *DoiResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	raw, ok := d.(descriptor.RawURL)
	if !ok {
		return nil, nil
	}
	u := raw.URL.URL
	if u == nil {
		return nil, nil
	}

	doi, ok := extractDoi(u)
	if !ok {
		return nil, nil
	}

	base := r.BaseURL
	if base == "" {
		base = handleAPIBase
	}
	reqURL := base + doi
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, rerrors.NewNetworkError(reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return certainty.NewDoesNotExist(descriptor.KindDoi, "DOI not found: "+doi), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, rerrors.NewHTTPError(reqURL, resp.StatusCode)
	}

	var parsed handleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, rerrors.Wrap(rerrors.CategoryNetwork, "decoding handle response", err)
	}

	for _, v := range parsed.Values {
		if v.Type == "URL" && v.Data.Value != "" {
			target, err := descriptor.ParseURL(v.Data.Value)
			if err != nil {
				continue
			}
			return certainty.NewExists(descriptor.Doi{URL: target}), nil
		}
	}

	return certainty.NewDoesNotExist(descriptor.KindDoi, "no URL value in handle record for "+doi), nil
}

// extractDoi recognizes doi:/hdl: opaque schemes, doi.org/www.doi.org/
// hdl.handle.net hosts, or a bare "10." path-prefix convenience form.
func extractDoi(u *url.URL) (string, bool) {
	scheme := strings.ToLower(u.Scheme)
	if scheme == "doi" || scheme == "hdl" {
		return strings.TrimPrefix(descriptor.PathOrOpaque(u), "/"), true
	}

	host := strings.ToLower(u.Hostname())
	path := strings.TrimPrefix(u.Path, "/")

	if doiHosts[host] {
		return path, true
	}
	if strings.HasPrefix(path, "10.") {
		return path, true
	}
	return "", false
}
