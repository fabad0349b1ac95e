package ioutilx_test

import (
	"os"
	"path/filepath"

	. "github.com/docshelf/warden/pkg/ioutilx"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("#OpenLogFile", func() {
	var dirName, logFilePath string

	BeforeEach(func() {
		var err error
		dirName, err = os.MkdirTemp("", "warden-test")
		Expect(err).NotTo(HaveOccurred())

		logFilePath = filepath.Join(dirName, "audit.log")
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dirName)).To(Succeed())
	})

	It("creates a non-existent audit file", func() {
		file, err := OpenLogFile(logFilePath)
		Expect(err).NotTo(HaveOccurred())

		defer file.Close()

		fileInfo, err := os.Stat(logFilePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(fileInfo.Mode()).To(Equal(os.FileMode(0600)))
		Expect(fileInfo.Name()).To(Equal("audit.log"))
	})

	It("appends to an existing audit file", func() {
		err := os.WriteFile(logFilePath, []byte("logline1\nlogline2\n"), 0600)
		Expect(err).NotTo(HaveOccurred())

		logFile, err := OpenLogFile(logFilePath)
		Expect(err).NotTo(HaveOccurred())

		_, err = logFile.Write([]byte("logline3\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(logFile.Close()).To(Succeed())

		contents, err := os.ReadFile(logFilePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(contents)).To(Equal("logline1\nlogline2\nlogline3\n"))
	})

	It("returns an error when the directory does not exist", func() {
		_, err := OpenLogFile(filepath.Join(dirName, "nonexistent", "audit.log"))
		Expect(err).To(HaveOccurred())
	})
})
