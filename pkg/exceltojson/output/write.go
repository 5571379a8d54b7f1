package output

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// FileName returns "<stem>.<ext>", or stem alone when ext is empty.
func FileName(stem, ext string) string {
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// WriteFile writes data to dir/name and returns the full path.
func WriteFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}
