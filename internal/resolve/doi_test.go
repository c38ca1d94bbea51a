package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

func TestExtractDoi(t *testing.T) {
	cases := []struct {
		raw     string
		wantDoi string
		wantOK  bool
	}{
		{"doi:10.5281/zenodo.1234", "10.5281/zenodo.1234", true},
		{"hdl:20.500.12345/abc", "20.500.12345/abc", true},
		{"https://doi.org/10.5281/zenodo.1234", "10.5281/zenodo.1234", true},
		{"https://hdl.handle.net/20.500.12345/abc", "20.500.12345/abc", true},
		{"https://example.com/10.5281/zenodo.1234", "10.5281/zenodo.1234", true},
		{"https://example.com/not-a-doi", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			u, err := descriptor.ParseURL(tc.raw)
			require.NoError(t, err)
			doi, ok := extractDoi(u.URL)
			assert.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.wantDoi, doi)
			}
		})
	}
}

func TestDoiResolver_Resolve(t *testing.T) {
	t.Run("resolves to target URL", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"responseCode":1,"values":[{"type":"URL","data":{"value":"https://zenodo.org/record/999"}}]}`))
		}))
		defer srv.Close()

		r := &DoiResolver{Client: srv.Client(), BaseURL: srv.URL + "/"}
		u, err := descriptor.ParseURL("doi:10.5281/zenodo.999")
		require.NoError(t, err)
		a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.Exists, a.Level)
		doi := a.Descriptor.(descriptor.Doi)
		assert.Equal(t, "https://zenodo.org/record/999", doi.URL.String())
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		r := &DoiResolver{Client: srv.Client(), BaseURL: srv.URL + "/"}
		u, _ := descriptor.ParseURL("doi:10.5281/zenodo.nope")
		a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, certainty.DoesNotExist, a.Level)
	})

	t.Run("non-doi input returns nil", func(t *testing.T) {
		r := NewDoiResolver(http.DefaultClient)
		u, _ := descriptor.ParseURL("https://example.com/foo")
		a, err := r.Resolve(context.Background(), descriptor.RawURL{URL: u})
		require.NoError(t, err)
		assert.Nil(t, a)
	})
}
