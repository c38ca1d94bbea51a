package serialize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

func TestToJSON_Exists(t *testing.T) {
	a := certainty.NewExists(descriptor.ImmutableGit{
		Repo: "https://github.com/jupyterhub/zero-to-jupyterhub-k8s",
		Ref:  "ada2170a2181ae1760d85eab74e5264d0c6bb67f",
	})

	raw, err := ToJSON(a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "Exists", got["certainity"])
	assert.Equal(t, "ImmutableGit", got["kind"])
	data := got["data"].(map[string]any)
	assert.Equal(t, "ada2170a2181ae1760d85eab74e5264d0c6bb67f", data["ref"])
}

func TestToJSON_DoesNotExist(t *testing.T) {
	a := certainty.NewDoesNotExist(descriptor.KindImmutableGit, "Could not access git repository at https://github.com/yuvipanda/does-not-exist-e43")

	raw, err := ToJSON(a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "DoesNotExist", got["certainity"])
	assert.Equal(t, "ImmutableGit", got["kind"])
	data := got["data"].(map[string]any)
	assert.Contains(t, data["message"], "does-not-exist-e43")
}

func TestToJSON_RoundTripStable(t *testing.T) {
	a := certainty.NewMaybeExists(descriptor.Git{Repo: "https://github.com/a/b", Ref: "HEAD"})

	first, err := ToJSON(a)
	require.NoError(t, err)

	var roundTripped map[string]any
	require.NoError(t, json.Unmarshal(first, &roundTripped))
	reencoded, err := json.Marshal(roundTripped)
	require.NoError(t, err)

	var again map[string]any
	require.NoError(t, json.Unmarshal(reencoded, &again))

	var orig map[string]any
	require.NoError(t, json.Unmarshal(first, &orig))
	assert.Equal(t, orig, again)
}
