package descriptor

// Git is a repository URL plus a symbolic ref — a branch, tag, "HEAD", or
// a SHA-shaped string not yet confirmed to exist. Mutable: the ref can
// move.
type Git struct {
	Repo string `json:"repo"`
	Ref  string `json:"ref"`
}

func (Git) Kind() Kind      { return KindGit }
func (Git) Immutable() bool { return false }

// ImmutableGit is a Git descriptor whose ref has been confirmed to be a
// 40-hex commit SHA.
type ImmutableGit struct {
	Repo string `json:"repo"`
	Ref  string `json:"ref"`
}

func (ImmutableGit) Kind() Kind      { return KindImmutableGit }
func (ImmutableGit) Immutable() bool { return true }

// GitHubPR is a pull request URL, further-resolvable into a Git descriptor
// pointed at the PR's head ref.
type GitHubPR struct {
	Installation URL `json:"installation"`
	URL          URL `json:"url"`
}

func (GitHubPR) Kind() Kind      { return KindGitHubPR }
func (GitHubPR) Immutable() bool { return false }

// GitHubActionArtifact identifies a single workflow-run artifact by
// numeric id. Immutable: a given artifact id's content never changes.
type GitHubActionArtifact struct {
	Installation URL    `json:"installation"`
	Account      string `json:"account"`
	Repo         string `json:"repo"`
	ArtifactID   int64  `json:"artifact_id"`
}

func (GitHubActionArtifact) Kind() Kind      { return KindGitHubActionArtifact }
func (GitHubActionArtifact) Immutable() bool { return true }

// DataverseDataset identifies a dataset by its persistent identifier
// within an installation. Mutable: Dataverse versions datasets
// independently of the persistent id.
type DataverseDataset struct {
	InstallationURL URL    `json:"installationUrl"`
	PersistentID    string `json:"persistentId"`
}

func (DataverseDataset) Kind() Kind      { return KindDataverseDataset }
func (DataverseDataset) Immutable() bool { return false }

// ZenodoDataset identifies a Zenodo/Invenio record by numeric id.
// Immutable: Zenodo records are versioned as distinct record ids.
type ZenodoDataset struct {
	InstallationURL URL    `json:"installationUrl"`
	RecordID        string `json:"recordId"`
}

func (ZenodoDataset) Kind() Kind      { return KindZenodoDataset }
func (ZenodoDataset) Immutable() bool { return true }

// FigshareDataset identifies a Figshare article, optionally pinned to a
// version. Mutable when Version is absent (zero).
type FigshareDataset struct {
	Installation FigshareInstallation `json:"installation"`
	ArticleID    int64                `json:"articleId"`
	Version      int64                `json:"version,omitempty"`
}

func (FigshareDataset) Kind() Kind      { return KindFigshareDataset }
func (FigshareDataset) Immutable() bool { return false }

// ImmutableFigshareDataset is a FigshareDataset with a confirmed version.
type ImmutableFigshareDataset struct {
	Installation FigshareInstallation `json:"installation"`
	ArticleID    int64                `json:"articleId"`
	Version      int64                `json:"version"`
}

func (ImmutableFigshareDataset) Kind() Kind      { return KindImmutableFigshareDataset }
func (ImmutableFigshareDataset) Immutable() bool { return true }

// HydroshareDataset identifies a Hydroshare resource by its id. Mutable:
// Hydroshare resources can be edited in place.
type HydroshareDataset struct {
	ResourceID string `json:"resource_id"`
}

func (HydroshareDataset) Kind() Kind      { return KindHydroshareDataset }
func (HydroshareDataset) Immutable() bool { return false }

// CKANDataset identifies a dataset (package) within a CKAN installation.
// Mutable: CKAN packages are edited in place.
type CKANDataset struct {
	InstallationURL URL    `json:"installationUrl"`
	DatasetID       string `json:"dataset_id"`
}

func (CKANDataset) Kind() Kind      { return KindCKANDataset }
func (CKANDataset) Immutable() bool { return false }

// GoogleDriveFolder identifies a Drive folder by its opaque id. Mutable:
// folder contents can change at any time.
type GoogleDriveFolder struct {
	ID string `json:"id"`
}

func (GoogleDriveFolder) Kind() Kind      { return KindGoogleDriveFolder }
func (GoogleDriveFolder) Immutable() bool { return false }

// ImmutableGoogleDriveFolder pins a Drive folder to a content hash over
// its recursive listing (§4.7 directory hash).
type ImmutableGoogleDriveFolder struct {
	ID      string `json:"id"`
	DirHash string `json:"dir_hash"`
}

func (ImmutableGoogleDriveFolder) Kind() Kind      { return KindImmutableGoogleDriveFolder }
func (ImmutableGoogleDriveFolder) Immutable() bool { return true }

// CompressedFile is a direct download link to an archive. Immutable when
// Etag is present and treated as stable (the caller's judgment call — this
// descriptor itself carries no verification of etag stability).
type CompressedFile struct {
	URL      URL    `json:"url"`
	MimeType string `json:"mime_type"`
	Etag     string `json:"etag,omitempty"`
}

func (CompressedFile) Kind() Kind { return KindCompressedFile }

// Immutable reports true only when Etag is present: per §3.1, a
// CompressedFile is "immutable when the etag is present and stable". The
// descriptor itself does not verify etag stability; callers that treat
// this as a hard immutability guarantee must trust the provider.
func (c CompressedFile) Immutable() bool {
	return c.Etag != ""
}

// FigshareInstallation is a supporting value naming a Figshare
// deployment's public URL and API base URL; it is not itself a pipeline
// question or answer.
type FigshareInstallation struct {
	URL    URL `json:"url"`
	APIURL URL `json:"apiUrl"`
}

func (FigshareInstallation) Kind() Kind      { return KindFigshareInstallation }
func (FigshareInstallation) Immutable() bool { return false }
