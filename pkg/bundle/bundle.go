// Package bundle zips a set of named blobs into one archive.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// File is one entry in an archive.
type File struct {
	Name string
	Data []byte
}

// Archive writes the files into a zip archive and returns its bytes.
func Archive(files []File) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("bundle: create %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("bundle: write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("bundle: close: %w", err)
	}
	return buf.Bytes(), nil
}
