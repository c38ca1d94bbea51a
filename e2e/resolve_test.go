//go:build e2e

package e2e

import (
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// decodeLines parses one JSON object per output line, the shape `reporef
// resolve` prints in non-debug mode.
func decodeLines(output string) []map[string]any {
	var steps []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		Expect(json.Unmarshal([]byte(line), &m)).To(Succeed())
		steps = append(steps, m)
	}
	return steps
}

// resolveTests exercises the six literal scenarios from the resolution
// loop's testable-properties section against the live providers they
// name.
func resolveTests() {
	It("resolves a bare GitHub repo URL non-recursively to MaybeExists(GitHubURL)", func() {
		output, code := testExec.Exec("resolve", "--no-recurse",
			"https://github.com/pyOpenSci/pyos-package-template")
		Expect(code).To(Equal(0))

		steps := decodeLines(output)
		Expect(steps).To(HaveLen(1))
		Expect(steps[0]["certainity"]).To(Equal("MaybeExists"))
		Expect(steps[0]["kind"]).To(Equal("GitHubURL"))
	})

	It("resolves a GitHub tree URL recursively down to an immutable git commit", func() {
		output, code := testExec.Exec("resolve",
			"https://github.com/jupyterhub/zero-to-jupyterhub-k8s/tree/0.8.0")
		Expect(code).To(Equal(0))

		steps := decodeLines(output)
		Expect(len(steps)).To(BeNumerically(">=", 1))

		last := steps[len(steps)-1]
		Expect(last["certainity"]).To(Equal("Exists"))
		Expect(last["kind"]).To(Equal("ImmutableGit"))

		data, _ := last["data"].(map[string]any)
		Expect(data["repo"]).To(Equal("https://github.com/jupyterhub/zero-to-jupyterhub-k8s"))
		Expect(data["ref"]).To(Equal("ada2170a2181ae1760d85eab74e5264d0c6bb67f"))
	})

	It("resolves a Dataverse file-level DOI to its containing dataset", func() {
		output, code := testExec.Exec("resolve", "doi:10.7910/DVN/6ZXAGT/3YRRYJ")
		Expect(code).To(Equal(0))

		steps := decodeLines(output)
		last := steps[len(steps)-1]
		Expect(last["certainity"]).To(Equal("Exists"))
		Expect(last["kind"]).To(Equal("DataverseDataset"))

		data, _ := last["data"].(map[string]any)
		Expect(data["persistentId"]).To(Equal("doi:10.7910/DVN/6ZXAGT"))
	})

	It("follows a Zenodo /doi/ URL via HEAD to a dataset id", func() {
		output, code := testExec.Exec("resolve",
			"https://zenodo.org/doi/10.5281/zenodo.805993")
		Expect(code).To(Equal(0))

		steps := decodeLines(output)
		last := steps[len(steps)-1]
		Expect(last["certainity"]).To(Equal("MaybeExists"))
		Expect(last["kind"]).To(Equal("ZenodoDataset"))

		data, _ := last["data"].(map[string]any)
		Expect(data["recordId"]).To(Equal("14007206"))
	})

	It("resolves a Figshare article URL to an immutable versioned dataset", func() {
		output, code := testExec.Exec("resolve",
			"https://figshare.com/articles/code/Binder-ready_openSenseMap_Analysis/9782777")
		Expect(code).To(Equal(0))

		steps := decodeLines(output)
		last := steps[len(steps)-1]
		Expect(last["certainity"]).To(Equal("Exists"))
		Expect(last["kind"]).To(Equal("ImmutableFigshareDataset"))

		data, _ := last["data"].(map[string]any)
		Expect(data["articleId"]).To(BeNumerically("==", 9782777))
		Expect(data["version"]).To(BeNumerically("==", 3))
	})

	It("reports DoesNotExist for a git repo that does not exist and halts recursion", func() {
		output, code := testExec.Exec("resolve",
			"https://github.com/yuvipanda/does-not-exist-e43")
		Expect(code).To(Equal(1))

		steps := decodeLines(output)
		Expect(len(steps)).To(BeNumerically(">=", 1))
		last := steps[len(steps)-1]
		Expect(last["certainity"]).To(Equal("DoesNotExist"))
		Expect(last["kind"]).To(Equal("ImmutableGit"))
	})
}
