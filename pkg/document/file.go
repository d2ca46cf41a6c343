package document

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/chious/readmequest/pkg/errors"
)

// ReadFile reads the whole document at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces the document at path with content. The new content is
// written to a temporary file in the same directory and renamed over the
// original, so readers see either the old or the new document. The original
// file mode is kept.
func WriteFile(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", path)
	}
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", path)
	}

	if _, err := tmp.WriteString(content); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}
