package util

import (
	"archive/zip"
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tencent-go/avrogen/errx"
)

type DataFile struct {
	Name string
	Data []byte
	Dir  string
}

func (f DataFile) Path() string {
	p := path.Join(f.Dir, f.Name)
	p = strings.TrimPrefix(p, "/")
	return strings.TrimPrefix(p, "./")
}

// WriteFile stores f below root, creating directories as needed.
func WriteFile(root string, f DataFile) (string, errx.Error) {
	target := filepath.Join(root, filepath.FromSlash(f.Path()))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errx.IO.WithCause(err).Err()
	}
	if err := os.WriteFile(target, f.Data, 0o644); err != nil {
		return "", errx.IO.WithCause(err).Err()
	}
	return target, nil
}

func ZipFilesBytes(files []DataFile) ([]byte, errx.Error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, file := range files {
		writer, err := zipWriter.CreateHeader(&zip.FileHeader{
			Name:   file.Path(),
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, errx.IO.WithCause(err).Err()
		}
		if _, err = writer.Write(file.Data); err != nil {
			return nil, errx.IO.WithCause(err).Err()
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, errx.IO.WithCause(err).Err()
	}
	return buf.Bytes(), nil
}
