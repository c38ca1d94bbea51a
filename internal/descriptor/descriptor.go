// Package descriptor defines the tagged-variant set of questions and
// answers the resolution pipeline passes between resolvers. Every variant
// is a plain, immutable value: resolvers never mutate a descriptor once
// built, and a descriptor holds no external resource.
package descriptor

import "net/url"

// Kind discriminates a Descriptor's concrete variant. It is also the
// "kind" field of the canonical JSON form and the NotFoundKind carried by
// a DoesNotExist answer.
type Kind string

const (
	KindRawURL      Kind = "RawURL"
	KindGitHubURL   Kind = "GitHubURL"
	KindGitLabURL   Kind = "GitLabURL"
	KindGistURL     Kind = "GistURL"
	KindZenodoURL   Kind = "ZenodoURL"
	KindFigshareURL Kind = "FigshareURL"
	KindDataverseURL Kind = "DataverseURL"
	KindDoi         Kind = "Doi"

	KindGit                     Kind = "Git"
	KindImmutableGit            Kind = "ImmutableGit"
	KindGitHubPR                Kind = "GitHubPR"
	KindGitHubActionArtifact    Kind = "GitHubActionArtifact"
	KindDataverseDataset        Kind = "DataverseDataset"
	KindZenodoDataset           Kind = "ZenodoDataset"
	KindFigshareDataset         Kind = "FigshareDataset"
	KindImmutableFigshareDataset Kind = "ImmutableFigshareDataset"
	KindHydroshareDataset       Kind = "HydroshareDataset"
	KindCKANDataset             Kind = "CKANDataset"
	KindGoogleDriveFolder       Kind = "GoogleDriveFolder"
	KindImmutableGoogleDriveFolder Kind = "ImmutableGoogleDriveFolder"
	KindCompressedFile          Kind = "CompressedFile"

	KindFigshareInstallation Kind = "FigshareInstallation"
)

// Descriptor is implemented by every question/answer variant.
type Descriptor interface {
	// Kind returns the variant discriminant, used for registry lookup
	// and canonical JSON.
	Kind() Kind
	// Immutable reports whether this variant's referent is guaranteed
	// never to change once it exists (invariant 1, §3.3).
	Immutable() bool
}

// URL wraps net/url.URL so descriptor fields marshal to their string form
// in canonical JSON instead of the verbose struct net/url.URL exposes.
type URL struct {
	*url.URL
}

// MarshalJSON renders the URL as its string form.
func (u URL) MarshalJSON() ([]byte, error) {
	if u.URL == nil {
		return []byte(`""`), nil
	}
	return []byte(`"` + u.String() + `"`), nil
}

// ParseURL parses s and wraps the result.
func ParseURL(s string) (URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return URL{}, err
	}
	return URL{u}, nil
}

// PathOrOpaque returns u.Path, falling back to u.Opaque for
// opaque-scheme URIs (doi:10.1234/x, hdl:20.500/y) where net/url puts the
// identifier content in Opaque rather than Path.
func PathOrOpaque(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.Path
}
