package descriptor

// RawURL is the unclassified parse of a user-supplied question string.
type RawURL struct {
	URL URL `json:"url"`
}

func (RawURL) Kind() Kind      { return KindRawURL }
func (RawURL) Immutable() bool { return false }

// GitHubURL is a URL recognized as living under a GitHub (or GitHub
// Enterprise) installation, not yet parsed into a repo/PR/artifact shape.
type GitHubURL struct {
	Installation URL `json:"installation"`
	URL          URL `json:"url"`
}

func (GitHubURL) Kind() Kind      { return KindGitHubURL }
func (GitHubURL) Immutable() bool { return false }

// GitLabURL is a URL recognized as living under a GitLab installation.
type GitLabURL struct {
	Installation URL `json:"installation"`
	URL          URL `json:"url"`
}

func (GitLabURL) Kind() Kind      { return KindGitLabURL }
func (GitLabURL) Immutable() bool { return false }

// GistURL is a URL recognized as a GitHub Gist.
type GistURL struct {
	Installation URL `json:"installation"`
	URL          URL `json:"url"`
}

func (GistURL) Kind() Kind      { return KindGistURL }
func (GistURL) Immutable() bool { return false }

// ZenodoURL is a URL recognized as living under a Zenodo/Invenio
// installation.
type ZenodoURL struct {
	Installation URL `json:"installation"`
	URL          URL `json:"url"`
}

func (ZenodoURL) Kind() Kind      { return KindZenodoURL }
func (ZenodoURL) Immutable() bool { return false }

// FigshareURL is a URL recognized as living under a Figshare installation.
type FigshareURL struct {
	Installation URL `json:"installation"`
	URL          URL `json:"url"`
}

func (FigshareURL) Kind() Kind      { return KindFigshareURL }
func (FigshareURL) Immutable() bool { return false }

// DataverseURL is a URL recognized as living under a Dataverse
// installation.
type DataverseURL struct {
	Installation URL `json:"installation"`
	URL          URL `json:"url"`
}

func (DataverseURL) Kind() Kind      { return KindDataverseURL }
func (DataverseURL) Immutable() bool { return false }

// Doi is a DOI/handle that has been dereferenced into a target URL.
type Doi struct {
	URL URL `json:"url"`
}

func (Doi) Kind() Kind      { return KindDoi }
func (Doi) Immutable() bool { return false }
