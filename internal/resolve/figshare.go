package resolve

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/reporef/reporef/internal/catalog"
	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/rerrors"
)

// FigshareURLResolver parses a classified FigshareURL's path into a
// FigshareDataset, pairing the matched public installation with its API
// base URL from the catalog (§4.3.2).
type FigshareURLResolver struct {
	Installations []catalog.FigshareInstallation
}

func NewFigshareURLResolver(installations []catalog.FigshareInstallation) *FigshareURLResolver {
	return &FigshareURLResolver{Installations: installations}
}

func (r *FigshareURLResolver) Name() string { return "FigshareResolver" }

func (r *FigshareURLResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindFigshareURL}
}

func (r *FigshareURLResolver) Resolve(_ context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	fu, ok := d.(descriptor.FigshareURL)
	if !ok {
		return nil, nil
	}
	u := fu.URL.URL
	parts := splitPath(u.Path)

	idx := -1
	for i, p := range parts {
		if p == "articles" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	rest := parts[idx+1:]
	if len(rest) == 0 {
		return nil, nil
	}

	inst := r.matchInstallation(fu.Installation.String())

	// rest is like [code, "Title", "9782777"] or [..., "9782777", "3"]
	if len(rest) >= 2 {
		if articleID, err := strconv.ParseInt(rest[len(rest)-2], 10, 64); err == nil {
			if version, err := strconv.ParseInt(rest[len(rest)-1], 10, 64); err == nil {
				return certainty.NewMaybeExists(descriptor.FigshareDataset{
					Installation: inst, ArticleID: articleID, Version: version,
				}), nil
			}
		}
	}
	if articleID, err := strconv.ParseInt(rest[len(rest)-1], 10, 64); err == nil {
		return certainty.NewMaybeExists(descriptor.FigshareDataset{Installation: inst, ArticleID: articleID}), nil
	}

	return nil, nil
}

func (r *FigshareURLResolver) matchInstallation(publicURL string) descriptor.FigshareInstallation {
	for _, inst := range r.Installations {
		if strings.TrimRight(inst.URL, "/") == strings.TrimRight(publicURL, "/") {
			u, _ := descriptor.ParseURL(inst.URL)
			api, _ := descriptor.ParseURL(inst.APIURL)
			return descriptor.FigshareInstallation{URL: u, APIURL: api}
		}
	}
	u, _ := descriptor.ParseURL(publicURL)
	return descriptor.FigshareInstallation{URL: u}
}

// ImmutableFigshareResolver confirms (or assigns) a version for a
// FigshareDataset (§4.3.3 "Figshare mutable → immutable resolver").
type ImmutableFigshareResolver struct {
	Client *http.Client
}

func NewImmutableFigshareResolver(client *http.Client) *ImmutableFigshareResolver {
	return &ImmutableFigshareResolver{Client: client}
}

func (r *ImmutableFigshareResolver) Name() string { return "ImmutableFigshareResolver" }

func (r *ImmutableFigshareResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindFigshareDataset}
}

type figshareVersion struct {
	Version int64 `json:"version"`
}

func (r *ImmutableFigshareResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	fd, ok := d.(descriptor.FigshareDataset)
	if !ok {
		return nil, nil
	}

	if fd.Version != 0 {
		return certainty.NewMaybeExists(descriptor.ImmutableFigshareDataset{
			Installation: fd.Installation, ArticleID: fd.ArticleID, Version: fd.Version,
		}), nil
	}

	reqURL := strings.TrimRight(fd.Installation.APIURL.String(), "/") + "/articles/" + strconv.FormatInt(fd.ArticleID, 10) + "/versions"
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
		return certainty.NewDoesNotExist(descriptor.KindImmutableFigshareDataset,
			"no versions found for figshare article "+strconv.FormatInt(fd.ArticleID, 10)), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, rerrors.NewHTTPError(reqURL, resp.StatusCode)
	}

	var versions []figshareVersion
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return nil, rerrors.Wrap(rerrors.CategoryNetwork, "decoding figshare versions response", err)
	}
	if len(versions) == 0 {
		return certainty.NewDoesNotExist(descriptor.KindImmutableFigshareDataset,
			"no versions found for figshare article "+strconv.FormatInt(fd.ArticleID, 10)), nil
	}

	last := versions[len(versions)-1]
	return certainty.NewExists(descriptor.ImmutableFigshareDataset{
		Installation: fd.Installation, ArticleID: fd.ArticleID, Version: last.Version,
	}), nil
}
