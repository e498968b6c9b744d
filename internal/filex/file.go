// Package filex holds filesystem helpers for the upload directory.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/caet/internal/common"
)

// TempPrefix marks in-flight files written by ReplaceFile. Directory
// listings should skip names carrying it.
const TempPrefix = ".caet-tmp-"

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReplaceFile streams r into dir/name. The content lands in a temporary file
// first and is renamed over the target, so concurrent writers of the same
// name never interleave: the last rename wins.
func ReplaceFile(dir, name string, r io.Reader) error {
	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		return fmt.Errorf("temp name: %w", err)
	}
	tmp := filepath.Join(dir, TempPrefix+suffix)

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// IsTemp reports whether name is an in-flight ReplaceFile temp file.
func IsTemp(name string) bool {
	return strings.HasPrefix(name, TempPrefix)
}
