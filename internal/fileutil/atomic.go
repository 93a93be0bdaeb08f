// Package fileutil provides atomic in-place file rewriting.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Rewrite holds state for replacing a file's contents atomically: the new
// contents go to a sibling temp file which is renamed over the original
// only after a complete successful write. A crash mid-write leaves the
// original untouched.
type Rewrite struct {
	// SrcInfo is the stat of the original file, taken before any write.
	SrcInfo os.FileInfo

	// IsExec reports whether the original file had any execute bit set.
	IsExec bool

	tmpFile *os.File
	tmpName string
	path    string
}

const executableBits = 0o111

// NewRewrite stats path and creates the sibling temp file.
// Caller must defer CleanupOnError.
func NewRewrite(path string) (*Rewrite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", path, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &Rewrite{
		SrcInfo: info,
		IsExec:  info.Mode()&executableBits != 0,
		tmpFile: tmpFile,
		tmpName: tmpFile.Name(),
		path:    path,
	}, nil
}

// Write appends data to the temp file.
func (rw *Rewrite) Write(data []byte) error {
	if _, err := rw.tmpFile.Write(data); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}

	return nil
}

// Commit sets permissions, closes the temp file and renames it over the
// original. With preserveTimestamps the original's mtime is restored.
// Returns the size of the final file.
func (rw *Rewrite) Commit(preserveTimestamps bool) (int64, error) {
	const ownerReadWrite = 0o600

	perm := os.FileMode(ownerReadWrite)
	if rw.IsExec {
		perm |= executableBits
	}

	if err := os.Chmod(rw.tmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := rw.tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(rw.tmpName, rw.path); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	if preserveTimestamps {
		mod := rw.SrcInfo.ModTime()
		if err := os.Chtimes(rw.path, mod, mod); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(rw.path)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", rw.path, err)
	}

	return info.Size(), nil
}

// CleanupOnError closes and removes the temp file if the rewrite failed.
func (rw *Rewrite) CleanupOnError(errp *error) {
	rw.tmpFile.Close() //nolint:gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(rw.tmpName) //nolint:gosec // best-effort cleanup
	}
}
