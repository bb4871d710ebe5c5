package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gint/internal/domain"
)

// DefinitionExt is the extension of test definition files, matched case-insensitively
const DefinitionExt = ".json"

// Scanner finds test definition files
type Scanner struct {
	filter  *Filter
	pattern string
}

// NewScanner creates a new Scanner. A non-empty pattern keeps only files whose
// base name matches it (see Filter.FilterByName).
func NewScanner(pattern string) *Scanner {
	return &Scanner{filter: NewFilter(), pattern: pattern}
}

// Discover returns the definition files to run for path. A file is returned
// as is; a directory is walked recursively in lexical order.
func (s *Scanner) Discover(path string) ([]string, error) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat tests path: %w", err)
	}

	if !info.IsDir() {
		return s.filter.FilterByName([]string{path}, s.pattern), nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsDefinitionFile(d.Name()) && isRegular(p, d) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return s.filter.FilterByName(files, s.pattern), nil
}

// IsDefinitionFile reports whether name carries the definition extension.
func IsDefinitionFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), DefinitionExt)
}

// isRegular reports whether the entry is a regular file, following symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
