package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrNoROM is returned when an archive holds no ROM image.
var ErrNoROM = errors.New("no ROM found in archive")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) are searched for the first .gb file, falling back
// to the first file in the archive.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", filename, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("zip %s: %w", filename, err)
		}
		files := make([]archiveFile, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		return readArchive(files)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("7z %s: %w", filename, err)
		}
		files := make([]archiveFile, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		return readArchive(files)
	}

	// .gb, .bin or anything else is read as is
	return data, nil
}

// archiveFile is a file stored in a zip or 7z archive.
type archiveFile interface {
	FileInfo() os.FileInfo
	Open() (io.ReadCloser, error)
}

// readArchive returns the contents of the first ROM in files.
func readArchive(files []archiveFile) ([]byte, error) {
	var rom archiveFile
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if rom == nil {
			rom = f
		}
		if strings.EqualFold(filepath.Ext(f.FileInfo().Name()), ".gb") {
			rom = f
			break
		}
	}
	if rom == nil {
		return nil, ErrNoROM
	}

	rc, err := rom.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
