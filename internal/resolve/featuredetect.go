package resolve

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

// FeatureDetectResolver is the last-resort battery (§4.3.3 "feature detect
// resolver"): when a RawURL matched no known installation host, probe its
// origin for the handful of signature endpoints self-hosted Dataverse,
// GitLab, plain git, and CKAN servers expose, and classify accordingly.
//
// Probe order is Dataverse, then GitLab, then git, then CKAN. The spec
// prose lists Dataverse ahead of git explicitly, which this resolver
// follows even though the original implementation's code happened to
// check is_git_repo before is_dataverse; the prose is taken as
// authoritative since both orders only matter for a host running more
// than one of these stacks behind the same origin, a case neither
// ordering claims to handle correctly anyway. CKAN is probed last and
// gated on the request path actually looking like a dataset page
// (containing "/dataset/"), since CKAN's status endpoint alone is too
// easily confused with the same path many other web apps happen to
// serve a 200 on.
type FeatureDetectResolver struct {
	Client *http.Client
}

func NewFeatureDetectResolver(client *http.Client) *FeatureDetectResolver {
	return &FeatureDetectResolver{Client: client}
}

func (r *FeatureDetectResolver) Name() string { return "FeatureDetectResolver" }

func (r *FeatureDetectResolver) Accepts() []descriptor.Kind {
	return []descriptor.Kind{descriptor.KindRawURL}
}

func (r *FeatureDetectResolver) Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error) {
	raw, ok := d.(descriptor.RawURL)
	if !ok {
		return nil, nil
	}
	u := raw.URL.URL
	if u == nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, nil
	}
	origin := u.Scheme + "://" + u.Host

	if body, ok := r.probeJSON(ctx, origin+"/api/info/version"); ok {
		if status, _ := body["status"].(string); status == "OK" {
			if data, _ := body["data"].(map[string]any); data != nil {
				if _, hasVersion := data["version"]; hasVersion {
					return certainty.NewMaybeExists(descriptor.DataverseURL{
						Installation: descriptor.URL{URL: &url.URL{Scheme: u.Scheme, Host: u.Host}},
						URL:          raw.URL,
					}), nil
				}
			}
		}
	}

	if body, ok := r.probeJSON(ctx, origin+"/.well-known/openid-configuration"); ok {
		if _, hasClaims := body["claims_supported"]; hasClaims {
			return certainty.NewMaybeExists(descriptor.GitLabURL{
				Installation: descriptor.URL{URL: &url.URL{Scheme: u.Scheme, Host: u.Host}},
				URL:          raw.URL,
			}), nil
		}
	}

	if r.probe(ctx, strings.TrimSuffix(u.String(), "/")+"/info/refs?service=git-upload-pack") {
		return certainty.NewMaybeExists(descriptor.Git{Repo: u.String(), Ref: "HEAD"}), nil
	}

	if strings.Contains(u.Path, "/dataset/") && r.probe(ctx, origin+"/api/3/action/status_show") {
		return certainty.NewMaybeExists(descriptor.CKANDataset{
			InstallationURL: descriptor.URL{URL: &url.URL{Scheme: u.Scheme, Host: u.Host}},
			DatasetID:       lastPathSegment(u.Path),
		}), nil
	}

	return nil, nil
}

// probe issues a GET and reports whether the origin answered 200. Any
// transport error or non-200 status is treated as "this isn't that kind
// of server" rather than a hard failure: feature detection is inherently
// speculative, and a probe failure should fall through to the next
// candidate rather than abort resolution.
func (r *FeatureDetectResolver) probe(ctx context.Context, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// probeJSON issues a GET and, for a 200 response with a JSON object body,
// returns the decoded body. A non-200 status, transport error, or
// non-object body is treated the same as probe's non-match case: fall
// through to the next candidate rather than declare a match on shape
// alone (the root cause of the GitLab and Dataverse probes previously
// misfiring on any host that happens to answer 200).
func (r *FeatureDetectResolver) probeJSON(ctx context.Context, target string) (map[string]any, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false
	}
	return body, true
}
