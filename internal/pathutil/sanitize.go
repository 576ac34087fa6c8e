package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeOutputDir cleans an output directory path and returns its absolute
// form. A directory that is itself a symlink is rejected; a directory that
// does not exist yet is accepted.
func SanitizeOutputDir(dir string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write into symlink: %s", abs)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("pathutil: not a directory: %s", abs)
		}
	case os.IsNotExist(err):
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	return abs, nil
}

// JoinFileName joins a bare file name onto dir. Names containing a path
// separator or "..", and empty names, are rejected.
func JoinFileName(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("pathutil: invalid file name %q", name)
	}
	return filepath.Join(dir, name), nil
}
