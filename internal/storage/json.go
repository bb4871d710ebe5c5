package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/pretty"

	"gint/internal/domain"
)

// ResultExt is the extension of result files
const ResultExt = ".json"

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// ValidateDir checks that dir exists and is a directory.
func (s *JSONStorage) ValidateDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		reason := "cannot be accessed"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "does not exist"
		}
		return &domain.InvalidOutputDirError{Path: dir, Reason: reason, Err: err}
	}
	if !info.IsDir() {
		return &domain.InvalidOutputDirError{Path: dir, Reason: "not a directory"}
	}
	return nil
}

// Save writes result to a new file in dir and returns its path. Two results
// for the same test name saved within the same second share a file name; the
// later one overwrites the earlier.
func (s *JSONStorage) Save(dir, testName string, result *domain.TestResult) (string, error) {
	if err := s.ValidateDir(dir); err != nil {
		return "", err
	}

	payload := result.Payload
	if len(payload) == 0 {
		payload = []byte(fmt.Sprintf(`{"passing":%t}`, result.Passing))
	}

	path := filepath.Join(dir, FileName(s.now(), testName))
	if err := os.WriteFile(path, pretty.PrettyOptions(payload, prettyOptions), 0644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}

// FileName builds "<Y><M><D><h><m><s> - <name>.json". Date parts are not zero padded.
func FileName(t time.Time, testName string) string {
	return fmt.Sprintf("%d%d%d%d%d%d - %s%s",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(),
		sanitizeName(testName), ResultExt)
}

// sanitizeName keeps the name on a single path segment.
func sanitizeName(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_", "\x00", "").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "unnamed"
	}
	return name
}
