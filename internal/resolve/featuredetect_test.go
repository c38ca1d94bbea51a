package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporef/reporef/internal/descriptor"
)

func TestFeatureDetectResolver_Dataverse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","data":{"version":"5.13","build":"1"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/dataset.xhtml?persistentId=doi:10.1/x")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, descriptor.KindDataverseURL, a.Descriptor.Kind())
}

func TestFeatureDetectResolver_Dataverse_RejectsBareOK(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info/version", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/dataset.xhtml?persistentId=doi:10.1/x")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	assert.Nil(t, a, "a bare 200 with no status/version body must not be mistaken for Dataverse")
}

func TestFeatureDetectResolver_CKAN(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/3/action/status_show", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/dataset/my-dataset")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, descriptor.KindCKANDataset, a.Descriptor.Kind())
	ds := a.Descriptor.(descriptor.CKANDataset)
	assert.Equal(t, "my-dataset", ds.DatasetID)
}

func TestFeatureDetectResolver_CKAN_RequiresDatasetPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/3/action/status_show", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/about")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	assert.Nil(t, a, "a status_show 200 with no /dataset/ in the path must not match CKAN")
}

func TestFeatureDetectResolver_GitLab(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"issuer":"https://example.com","claims_supported":["sub","name"]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/foo/bar")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, descriptor.KindGitLabURL, a.Descriptor.Kind())
}

func TestFeatureDetectResolver_GitLab_RejectsUnrelatedOIDC(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"issuer":"https://example.com"}`))
	})
	mux.HandleFunc("/foo/bar/info/refs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/foo/bar")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, descriptor.KindGit, a.Descriptor.Kind(),
		"an OIDC body with no claims_supported must fall through to the git probe, not match GitLab")
}

func TestFeatureDetectResolver_Git(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/foo/bar/info/refs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/foo/bar")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, descriptor.KindGit, a.Descriptor.Kind())
}

func TestFeatureDetectResolver_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewFeatureDetectResolver(srv.Client())
	u, _ := descriptor.ParseURL(srv.URL + "/whatever")
	a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
	require.NoError(t, err)
	assert.Nil(t, a)
}
