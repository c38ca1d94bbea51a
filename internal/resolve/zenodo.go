package resolve

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/rerrors"
)

// ZenodoResolver parses a classified ZenodoURL's path into a record id,
// following the HEAD-on-/doi/ redirect quirk described in §4.3.3 "Zenodo
// resolver" by recursing into itself rather than re-dispatching through
// the registry.
type ZenodoResolver struct {
	Client *http.Client
}

func NewZenodoResolver(client *http.Client) *ZenodoResolver {
	return &ZenodoResolver{Client: client}
}

func (r *ZenodoResolver) Name() string { return "ZenodoResolver" }

func (r *ZenodoResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindZenodoURL}
}

func (r *ZenodoResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	zu, ok := d.(descriptor.ZenodoURL)
	if !ok {
		return nil, nil
	}
	return r.resolveURL(ctx, zu.Installation, zu.URL.URL)
}

func (r *ZenodoResolver) resolveURL(ctx context.Context, installation descriptor.URL, u *url.URL) (*certainty.Answer, error) {
	path := strings.Trim(u.Path, "/")

	switch {
	case strings.HasPrefix(path, "record/"):
		return certainty.NewMaybeExists(zenodoDataset(installation, strings.TrimPrefix(path, "record/"))), nil

	case strings.HasPrefix(path, "records/"):
		return certainty.NewMaybeExists(zenodoDataset(installation, strings.TrimPrefix(path, "records/"))), nil

	case strings.HasPrefix(path, "doi/"):
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
		if err != nil {
			return nil, err
		}
		// Follow redirects manually so we can inspect the Location
		// header rather than the final response only.
		client := &http.Client{
			Transport: r.Client.Transport,
			Timeout:   r.Client.Timeout,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, rerrors.NewNetworkError(u.String(), err)
		}
		defer resp.Body.Close()

		loc := resp.Header.Get("Location")
		if loc == "" {
			return certainty.NewDoesNotExist(descriptor.KindZenodoDataset, "doi redirect had no Location header for "+u.String()), nil
		}
		target, err := url.Parse(loc)
		if err != nil {
			return nil, err
		}
		if !target.IsAbs() {
			target = u.ResolveReference(target)
		}
		return r.resolveURL(ctx, installation, target)
	}

	return nil, nil
}

func zenodoDataset(installation descriptor.URL, recordID string) descriptor.ZenodoDataset {
	return descriptor.ZenodoDataset{InstallationURL: installation, RecordID: recordID}
}
