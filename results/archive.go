package results

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// multiCloser closes a decompressing reader and the file underneath it.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openResults opens path for reading, decompressing .gz, .lz4 and .zip on the fly.
// A zip archive yields its largest regular file.
func openResults(path string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return openZipMember(path)
	case ".gz":
		file, err := os.Open(path)
		if err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
		gr, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, &FormatError{Path: path, Err: err}
		}
		return &multiCloser{Reader: gr, closers: []io.Closer{gr, file}}, nil
	case ".lz4":
		file, err := os.Open(path)
		if err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
		return &multiCloser{Reader: lz4.NewReader(file), closers: []io.Closer{file}}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return file, nil
}

func openZipMember(path string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, &FormatError{Path: path, Err: err}
		}
		return nil, &FileError{Path: path, Err: err}
	}

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		r.Close()
		return nil, &FormatError{Path: path, Err: errors.New("zip archive has no files")}
	}

	rc, err := largestFile.Open()
	if err != nil {
		r.Close()
		return nil, &FormatError{Path: path, Err: err}
	}
	return &multiCloser{Reader: rc, closers: []io.Closer{rc, r}}, nil
}
