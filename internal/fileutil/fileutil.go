// Package fileutil provides filesystem helpers for vault migration:
// change-aware writes and a skip-if-present media tree copy, both built
// to make repeated migrations cheap and non-destructive.
package fileutil

import (
	"crypto/md5" // #nosec G501 -- change detection only, not a security boundary
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

// ErrMediaSourceMissing indicates the media directory to copy from does
// not exist.
var ErrMediaSourceMissing = errors.New("media source directory not found")

// Filesystem permissions for created artifacts.
const (
	DirPermissions  = 0o750
	FilePermissions = 0o644
)

// FileExists returns true if path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ContentHash returns a hex digest of data for change detection.
func ContentHash(data []byte) string {
	sum := md5.Sum(data) // #nosec G401 -- change detection only
	return hex.EncodeToString(sum[:])
}

// WriteFileIfChanged writes content to path unless an identical file is
// already there, creating parent directories as needed. Reports whether
// a write happened. Skipped writes keep file modification times stable
// so sync tools see no phantom changes on re-runs.
func WriteFileIfChanged(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil { // #nosec G304 -- path derives from user-requested output dir
		if ContentHash(existing) == ContentHash(content) {
			return false, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, content, FilePermissions); err != nil {
		return false, fmt.Errorf("writing file: %w", err)
	}
	return true, nil
}

// CopyMediaTree mirrors the media directory into the vault. Existing
// destination files are never overwritten: a re-run only fills gaps.
func CopyMediaTree(srcRoot, dstRoot string) error {
	info, err := os.Stat(srcRoot)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrMediaSourceMissing, srcRoot)
	}

	opts := copy.Options{
		OnDirExists: func(src, dest string) copy.DirExistsAction {
			return copy.Merge
		},
		Skip: func(srcinfo os.FileInfo, src, dest string) (bool, error) {
			if srcinfo.IsDir() {
				return false, nil
			}
			return FileExists(dest), nil
		},
	}
	if err := copy.Copy(srcRoot, dstRoot, opts); err != nil {
		return fmt.Errorf("copying media tree: %w", err)
	}
	return nil
}
