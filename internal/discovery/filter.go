package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows discovered definition files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the files whose base name matches pattern.
// Supports patterns like "login*.json" or "*checkout*"; a pattern without
// wildcards matches any base name containing it. Matching ignores case.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}
	pattern = strings.ToLower(pattern)
	hasWildcard := strings.ContainsAny(pattern, "*?")

	filtered := make([]string, 0, len(files))
	for _, file := range files {
		name := strings.ToLower(filepath.Base(file))

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, file)
			continue
		}

		if !hasWildcard {
			if strings.Contains(name, pattern) {
				filtered = append(filtered, file)
			}
			continue
		}

		// Fall back to ordered substring matching for "*a*b*" style patterns
		if matchParts(name, strings.Split(pattern, "*")) {
			filtered = append(filtered, file)
		}
	}

	return filtered
}

func matchParts(name string, parts []string) bool {
	matchedAny := false
	rest := name
	for _, part := range parts {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") {
			return false
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
