package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/opgen/internal/fileutil"
	"github.com/erraggy/opgen/internal/pathutil"
)

// WriteOptions controls how generated files reach the disk.
type WriteOptions struct {
	// Check writes nothing and fails when a file would be created or changed.
	Check bool
}

// WriteSummary lists what a write pass did, by file name.
type WriteSummary struct {
	Written   []string
	Unchanged []string
}

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist. Files whose content is
// unchanged are not touched.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	_, err := r.WriteFilesWithOptions(outputDir, WriteOptions{})
	return err
}

// WriteFilesWithOptions writes all generated files to outputDir. In check
// mode every stale file is reported in the returned error.
func (r *GenerateResult) WriteFilesWithOptions(outputDir string, opts WriteOptions) (*WriteSummary, error) {
	dir, err := pathutil.SanitizeOutputDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	summary := &WriteSummary{}
	var stale []error
	for i := range r.Files {
		file := &r.Files[i]
		path, err := pathutil.JoinFileName(dir, file.Name)
		if err != nil {
			return summary, fmt.Errorf("generator: %w", err)
		}
		wrote, err := file.WriteFile(path, opts)
		switch {
		case err != nil && opts.Check:
			stale = append(stale, err)
		case err != nil:
			return summary, fmt.Errorf("generator: failed to write %s: %w", file.Name, err)
		case wrote:
			summary.Written = append(summary.Written, file.Name)
		default:
			summary.Unchanged = append(summary.Unchanged, file.Name)
		}
	}
	if len(stale) > 0 {
		return summary, fmt.Errorf("generator: %d file(s) out of date: %w", len(stale), errors.Join(stale...))
	}
	return summary, nil
}

// WriteFile writes the file to path unless it already holds the same bytes.
// The content goes to a temporary file first and is renamed into place.
// It reports whether the file was written.
func (f *GeneratedFile) WriteFile(path string, opts WriteOptions) (bool, error) {
	existing, readErr := os.ReadFile(path)
	switch {
	case readErr == nil && bytes.Equal(existing, f.Content):
		return false, nil
	case readErr == nil && opts.Check:
		return false, fmt.Errorf("check failed: %s differs", path)
	case readErr != nil && !os.IsNotExist(readErr):
		return false, fmt.Errorf("read existing: %w", readErr)
	case opts.Check:
		return false, fmt.Errorf("check failed: %s would be created", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirMode); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, f.Content, fileutil.ReadableByAll); err != nil {
		return false, fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("rename tmp: %w", err)
	}
	return true, nil
}
