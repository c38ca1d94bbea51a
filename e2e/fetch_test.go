//go:build e2e

package e2e

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func fetchTests() {
	It("fetches a git reference's content into an empty output directory", func() {
		outDir, err := os.MkdirTemp("", "reporef-fetch-git-")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(outDir)
		Expect(os.Remove(outDir)).To(Succeed()) // fetch must create it itself

		output, code := testExec.Exec("fetch",
			"https://github.com/pyOpenSci/pyos-package-template", outDir)
		Expect(code).To(Equal(0), output)

		entries, err := os.ReadDir(outDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).NotTo(BeEmpty())
		Expect(filepath.Join(outDir, ".git")).To(BeADirectory())
	})

	It("refuses to fetch into a non-empty output directory", func() {
		outDir, err := os.MkdirTemp("", "reporef-fetch-nonempty-")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(outDir)
		Expect(os.WriteFile(filepath.Join(outDir, "existing.txt"), []byte("x"), 0o644)).To(Succeed())

		_, code := testExec.Exec("fetch",
			"https://github.com/pyOpenSci/pyos-package-template", outDir)
		Expect(code).To(Equal(1))
	})

	It("fails resolution for an unrecognized reference before touching the output directory", func() {
		outDir, err := os.MkdirTemp("", "reporef-fetch-unknown-")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(outDir)
		Expect(os.Remove(outDir)).To(Succeed())

		_, code := testExec.Exec("fetch", "not-a-url-at-all", outDir)
		Expect(code).To(Equal(1))

		_, statErr := os.Stat(outDir)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})
}
