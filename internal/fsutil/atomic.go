// Package fsutil publishes converted files so a failed conversion never
// leaves a partial file at the output path.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place. Any existing file at path is replaced only on success.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "cannot create temp file")
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			// best effort, the original error is what matters
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "cannot write temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "cannot sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "cannot close temp file")
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "cannot chmod temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "cannot rename into place")
	}

	committed = true
	return nil
}
