package storage

import (
	"time"

	"gint/internal/domain"
)

// Storage persists the result of each executed test
type Storage interface {
	ValidateDir(dir string) error
	Save(dir, testName string, result *domain.TestResult) (string, error)
}

var _ Storage = (*JSONStorage)(nil)

// JSONStorage writes one pretty-printed JSON file per test result
type JSONStorage struct {
	now func() time.Time
}

// NewJSONStorage returns a Storage using the wall clock for file names.
func NewJSONStorage() *JSONStorage {
	return &JSONStorage{now: time.Now}
}

// NewJSONStorageWithClock returns a Storage using now for file names.
func NewJSONStorageWithClock(now func() time.Time) *JSONStorage {
	return &JSONStorage{now: now}
}
