package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "GOLDEN_UPDATE"

// Golden compares got against testdata/<name>.golden.
// If GOLDEN_UPDATE is set, the golden file is rewritten instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}

	if !bytes.Equal(got, want) {
		line := firstDiffLine(want, got)
		t.Errorf("output mismatch for %s at line %d\nWant:\n%s\nGot:\n%s", name, line, want, got)
	}
}

// GoldenFile compares the contents of the file at path against a golden file.
func GoldenFile(t *testing.T, name, path string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	Golden(t, name, got)
}

// firstDiffLine returns the 1-based line where a and b first differ.
func firstDiffLine(a, b []byte) int {
	la := bytes.Split(a, []byte("\n"))
	lb := bytes.Split(b, []byte("\n"))
	for i := 0; i < len(la) && i < len(lb); i++ {
		if !bytes.Equal(la[i], lb[i]) {
			return i + 1
		}
	}
	return min(len(la), len(lb)) + 1
}
