package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// DirMode is the default FileMode used when creating directories.
const DirMode = 0775

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// MkdirAll creates a directory and all of its parents.
func MkdirAll(dir string) error {
	return errors.Wrapf(os.MkdirAll(dir, DirMode), "failed to create directory '%s'", dir)
}

// WriteFile atomically replaces the content of `file` with `data`. The data is
// written to a temporary file in the same directory which is then renamed, so readers
// never observe a partially written file.
func WriteFile(file string, data []byte) error {
	dir := filepath.Dir(file)
	if err := MkdirAll(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file for '%s'", file)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to write '%s'", file)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to write '%s'", file)
	}
	if err := os.Chmod(tmpName, FileMode); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to set mode of '%s'", file)
	}
	if err := os.Rename(tmpName, file); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to move '%s' into place", file)
	}
	return nil
}

// RemoveFile removes a file, ignoring files that do not exist.
func RemoveFile(file string) error {
	err := os.Remove(file)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove '%s'", file)
	}
	return nil
}

// SameContent reports whether `file` exists and holds exactly `data`.
func SameContent(file string, data []byte) bool {
	existing, err := os.ReadFile(file)
	return err == nil && bytes.Equal(existing, data)
}

// Digest returns the hex encoded SHA-256 digest of `data`.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileDigest returns the hex encoded SHA-256 digest of the content of `file`.
func FileDigest(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read '%s'", file)
	}
	return Digest(data), nil
}
