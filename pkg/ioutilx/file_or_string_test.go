package ioutilx_test

import (
	"errors"
	"os"
	"time"

	. "github.com/docshelf/warden/pkg/ioutilx"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type fakeFileInfo struct {
	isDir bool
}

func (f fakeFileInfo) Name() string       { return "fake" }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0600 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() interface{}   { return nil }

type fakeStatter struct {
	info os.FileInfo
	err  error
}

func (f fakeStatter) Stat(string) (os.FileInfo, error) {
	return f.info, f.err
}

type fakeFileReader struct {
	contents []byte
	err      error
}

func (f fakeFileReader) ReadFile(string) ([]byte, error) {
	return f.contents, f.err
}

var _ = Describe("FileOrString", func() {
	Describe("#Bytes", func() {
		It("returns the file contents if readable", func() {
			subject := FileOrString("/some/fake/file")

			statter := fakeStatter{info: fakeFileInfo{}}
			reader := fakeFileReader{contents: []byte("file contents")}

			b, err := subject.Bytes(statter, reader)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal("file contents"))
		})

		It("returns the string if provided a string", func() {
			subject := FileOrString("some string")

			statter := fakeStatter{err: errors.New("does not exist")}

			b, err := subject.Bytes(statter, fakeFileReader{})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal("some string"))
		})

		It("decodes the newlines if passed a string", func() {
			subject := FileOrString("some\\nstring")

			statter := fakeStatter{err: errors.New("does not exist")}

			b, err := subject.Bytes(statter, fakeFileReader{})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal("some\nstring"))
		})

		It("fails if the path points to a directory", func() {
			subject := FileOrString("/some/fake/dir")

			statter := fakeStatter{info: fakeFileInfo{isDir: true}}

			_, err := subject.Bytes(statter, fakeFileReader{})
			Expect(err).To(HaveOccurred())
		})

		It("fails if the file is not readable", func() {
			subject := FileOrString("/some/fake/file")

			statter := fakeStatter{info: fakeFileInfo{}}
			reader := fakeFileReader{err: errors.New("error reading file")}

			_, err := subject.Bytes(statter, reader)
			Expect(err).To(MatchError("error reading file"))
		})
	})
})
