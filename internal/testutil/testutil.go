// Package testutil provides testing utilities for dsquery packages.
// It includes helpers for writing dataset fixtures to disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempFile writes content to a file named name inside a per-test
// temporary directory and returns its path.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// DatasetFile writes the example dataset to disk and returns its path.
func DatasetFile(t *testing.T) string {
	t.Helper()
	return TempFile(t, "dataset.xml", ExampleDataset)
}

// AssertLines fails the test unless got holds exactly the want lines.
func AssertLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
