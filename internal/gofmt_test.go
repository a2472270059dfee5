package internal

import (
	"bytes"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// projectRoot returns the module root whether the test runs from internal/
// or from the root itself.
func projectRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if filepath.Base(wd) == "internal" {
		return filepath.Dir(wd)
	}
	return wd
}

// goFiles walks dir and calls fn for every non-generated Go source file,
// skipping hidden and underscore-prefixed directories.
func goFiles(t *testing.T, dir string, fn func(path string, content []byte)) {
	t.Helper()

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fn(path, content)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk directory %s: %v", dir, err)
	}
}

// TestGofmtCompliance verifies that every Go source file is gofmt-clean.
// If this test fails, run: gofmt -w ./internal/ ./cmd/
func TestGofmtCompliance(t *testing.T) {
	root := projectRoot(t)

	var unformatted []string
	for _, dir := range []string{"internal", "cmd"} {
		goFiles(t, filepath.Join(root, dir), func(path string, content []byte) {
			formatted, err := format.Source(content)
			if err != nil {
				// unparsable files are reported by the compiler instead
				return
			}
			if !bytes.Equal(content, formatted) {
				rel, _ := filepath.Rel(root, path)
				unformatted = append(unformatted, rel)
			}
		})
	}

	if len(unformatted) > 0 {
		t.Errorf("The following files are not properly formatted:\n  - %s\n\nRun 'gofmt -w ./internal/ ./cmd/' to fix formatting issues.",
			strings.Join(unformatted, "\n  - "))
	}
}
