package render

import (
	"os"
	"path/filepath"

	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
)

// CheckOutputDir verifies that the directory path will be written into
// exists. It does not create it.
func CheckOutputDir(path string) error {
	if err := apperrors.ValidateOutputPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return apperrors.New(apperrors.ErrCodeOutputDir, "output directory %s does not exist", dir)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return apperrors.New(apperrors.ErrCodeOutputDir, "%s is not a directory", dir)
	}
	return nil
}

// WriteFile writes data to path, replacing any existing file.
//
// The parent directory must already exist. Data is written to a temporary
// file next to path and renamed into place, so readers never observe a
// partially written file and a failed write leaves nothing behind.
func WriteFile(path string, data []byte) (err error) {
	if err := CheckOutputDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "create temp file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "close %s", path)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "chmod %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "rename into %s", path)
	}
	return nil
}
