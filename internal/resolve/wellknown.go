package resolve

import (
	"context"
	"net/url"
	"strings"

	"github.com/reporef/reporef/internal/catalog"
	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

// WellKnownResolver is the pure, no-I/O classifier from §4.3.1: it
// matches a RawURL or Doi's host (and, for catalog-driven providers, base
// path) against known installations and produces the matching classified
// URL descriptor. Enumeration order below is precedence order.
type WellKnownResolver struct {
	GitHubHosts    []string
	GitLabHosts    []string
	GistHosts      []string
	HydroshareHost string
	GoogleDriveHost string
	Catalog        *catalog.Catalog
}

// NewWellKnownResolver builds the classifier from cat plus the fixed
// single-tenant hosts (github.com, gitlab.com, gist.github.com,
// www.hydroshare.org, drive.google.com) that are not catalog-driven.
func NewWellKnownResolver(cat *catalog.Catalog) *WellKnownResolver {
	return &WellKnownResolver{
		GitHubHosts:     []string{"github.com"},
		GitLabHosts:     []string{"gitlab.com"},
		GistHosts:       []string{"gist.github.com"},
		HydroshareHost:  "www.hydroshare.org",
		GoogleDriveHost: "drive.google.com",
		Catalog:         cat,
	}
}

func (r *WellKnownResolver) Name() string { return "WellKnownProvidersResolver" }

func (r *WellKnownResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindRawURL, descriptor.KindDoi}
}

func (r *WellKnownResolver) Resolve(_ context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	var u *url.URL
	switch v := d.(type) {
	case descriptor.RawURL:
		u = v.URL.URL
	case descriptor.Doi:
		u = v.URL.URL
	default:
		return nil, nil
	}
	if u == nil {
		return nil, nil
	}
	host := strings.ToLower(u.Hostname())

	if hostIn(host, r.GistHosts) {
		return certainty.NewMaybeExists(descriptor.GistURL{
			Installation: installationURL(r.GistHosts[0]),
			URL:          descriptor.URL{URL: u},
		}), nil
	}
	if hostIn(host, r.GitHubHosts) {
		return certainty.NewMaybeExists(descriptor.GitHubURL{
			Installation: installationURL(r.GitHubHosts[0]),
			URL:          descriptor.URL{URL: u},
		}), nil
	}
	if hostIn(host, r.GitLabHosts) {
		return certainty.NewMaybeExists(descriptor.GitLabURL{
			Installation: installationURL(r.GitLabHosts[0]),
			URL:          descriptor.URL{URL: u},
		}), nil
	}
	if host == r.HydroshareHost {
		id := lastPathSegment(u.Path)
		if id == "" {
			return nil, nil
		}
		return certainty.NewMaybeExists(descriptor.HydroshareDataset{ResourceID: id}), nil
	}
	if host == r.GoogleDriveHost {
		id := driveFolderID(u)
		if id == "" {
			return nil, nil
		}
		return certainty.NewMaybeExists(descriptor.GoogleDriveFolder{ID: id}), nil
	}

	if r.Catalog != nil {
		if inst, ok := matchInstallation(host, r.Catalog.Zenodo); ok {
			return certainty.NewMaybeExists(descriptor.ZenodoURL{
				Installation: installationURL(inst),
				URL:          descriptor.URL{URL: u},
			}), nil
		}
		if inst, ok := matchFigshareInstallation(host, r.Catalog.Figshare); ok {
			return certainty.NewMaybeExists(descriptor.FigshareURL{
				Installation: installationURL(inst),
				URL:          descriptor.URL{URL: u},
			}), nil
		}
		if inst, ok := matchInstallation(host, r.Catalog.Dataverse); ok {
			return certainty.NewMaybeExists(descriptor.DataverseURL{
				Installation: installationURL(inst),
				URL:          descriptor.URL{URL: u},
			}), nil
		}
	}

	return nil, nil
}

func hostIn(host string, hosts []string) bool {
	for _, h := range hosts {
		if host == h {
			return true
		}
	}
	return false
}

func matchInstallation(host string, installations []string) (string, bool) {
	for _, inst := range installations {
		iu, err := url.Parse(inst)
		if err != nil {
			continue
		}
		if strings.EqualFold(iu.Hostname(), host) {
			return inst, true
		}
	}
	return "", false
}

func matchFigshareInstallation(host string, installations []catalog.FigshareInstallation) (string, bool) {
	for _, inst := range installations {
		iu, err := url.Parse(inst.URL)
		if err != nil {
			continue
		}
		if strings.EqualFold(iu.Hostname(), host) {
			return inst.URL, true
		}
	}
	return "", false
}

func installationURL(raw string) descriptor.URL {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return descriptor.URL{}
	}
	return descriptor.URL{URL: u}
}

func lastPathSegment(p string) string {
	p = strings.TrimRight(p, "/")
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}

// driveFolderID extracts a Drive folder id from either the query-string
// form (?id=...) or the /folders/<id> path form.
func driveFolderID(u *url.URL) string {
	if id := u.Query().Get("id"); id != "" {
		return id
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "folders" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
