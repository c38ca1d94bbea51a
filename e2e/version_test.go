//go:build e2e

package e2e

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func versionTests() {
	It("prints version information", func() {
		output, code := testExec.Exec("version")
		Expect(code).To(Equal(0))
		Expect(output).To(ContainSubstring("reporef version"))
	})

	It("lists resolve and fetch in its help text", func() {
		output, code := testExec.Exec("--help")
		Expect(code).To(Equal(0))
		Expect(output).To(ContainSubstring("resolve"))
		Expect(output).To(ContainSubstring("fetch"))
	})
}
