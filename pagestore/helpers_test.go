package pagestore

import (
	"os"
	"path/filepath"
	"testing"
)

// makePages creates a pages directory with the given files, relative to a temporary root.
func makePages(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("====== "+f+" ======\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

var wikiFiles = []string{
	"start.txt",
	"wiki/syntax.txt",
	"wiki/dokuwiki.txt",
	"wiki/notes.md",
	"projects/alpha.txt",
	"projects/beta.txt",
	"projects/archive/old.txt",
}
