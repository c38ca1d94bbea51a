// Package catalog holds the build-time-static lists of known provider
// installations the well-known classifier (§4.3.1) matches incoming URLs
// against. The lists are embedded YAML, the teacher-idiom equivalent of
// the original system's embedded JSON, and may be extended (never
// replaced) by user config (internal/config) at load time.
package catalog

import (
	_ "embed"

	"github.com/goccy/go-yaml"
)

//go:embed dataverse.yaml
var dataverseYAML []byte

//go:embed zenodo.yaml
var zenodoYAML []byte

//go:embed figshare.yaml
var figshareYAML []byte

// FigshareInstallation names a Figshare deployment's public URL and API
// base URL.
type FigshareInstallation struct {
	URL    string `yaml:"url"`
	APIURL string `yaml:"apiUrl"`
}

// Catalog holds the merged (embedded + config-supplied) installation
// lists for every provider the well-known classifier checks.
type Catalog struct {
	Dataverse []string
	Zenodo    []string
	Figshare  []FigshareInstallation
}

// Load parses the embedded catalogs and merges extraDataverse,
// extraZenodo and extraFigshare (hostnames, turned into bare https URLs)
// on top.
func Load(extraDataverse, extraZenodo, extraFigshare []string) (*Catalog, error) {
	var c Catalog

	if err := yaml.Unmarshal(dataverseYAML, &c.Dataverse); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(zenodoYAML, &c.Zenodo); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(figshareYAML, &c.Figshare); err != nil {
		return nil, err
	}

	c.Dataverse = append(c.Dataverse, extraDataverse...)
	c.Zenodo = append(c.Zenodo, extraZenodo...)
	for _, host := range extraFigshare {
		c.Figshare = append(c.Figshare, FigshareInstallation{
			URL:    "https://" + host,
			APIURL: "https://api." + host + "/v2",
		})
	}

	return &c, nil
}
