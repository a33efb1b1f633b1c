package pagestore

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDirStore_ListPages(t *testing.T) {
	d := NewDirStore(makePages(t, wikiFiles...))

	tests := []struct {
		name      string
		namespace string
		want      []string
	}{
		{"root", "", []string{"start"}},
		{"namespace", "projects", []string{"alpha", "beta"}},
		{"nested", "projects:archive", []string{"old"}},
		{"separators trimmed", ":projects:archive:", []string{"old"}},
		{"only page files", "wiki", []string{"dokuwiki", "syntax"}},
		{"missing namespace", "nothere", []string{}},
		{"inner parent", "projects:archive:..", []string{"alpha", "beta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.ListPages(context.Background(), tt.namespace)
			if err != nil {
				t.Fatalf("ListPages() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ListPages() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDirStore_Walk(t *testing.T) {
	d := NewDirStore(makePages(t, wikiFiles...))

	var got []string
	err := d.Walk(context.Background(), func(namespace string, page string, path string) error {
		if filepath.Ext(path) != PageExt {
			t.Errorf("Walk() path %q is not a page file", path)
		}
		got = append(got, namespace+":"+page)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	sort.Strings(got)

	want := []string{
		":start",
		"projects:alpha",
		"projects:archive:old",
		"projects:beta",
		"wiki:dokuwiki",
		"wiki:syntax",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk() diff (-want +got):\n%s", diff)
	}
}

func TestDirStore_Canceled(t *testing.T) {
	d := NewDirStore(makePages(t, wikiFiles...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.ListPages(ctx, "wiki"); err == nil {
		t.Errorf("ListPages() with canceled context, want error")
	}
}

func TestDirStore_OutsideRoot(t *testing.T) {
	base := makePages(t, "pages/start.txt", "secret/passwords.txt")
	d := NewDirStore(filepath.Join(base, "pages"))

	for _, ns := range []string{"..:secret", "..", "wiki:..:..:secret", "../secret", "x/../../secret"} {
		t.Run(ns, func(t *testing.T) {
			got, err := d.ListPages(context.Background(), ns)
			if err != nil {
				t.Fatalf("ListPages() error = %v", err)
			}
			if diff := cmp.Diff([]string{}, got); diff != "" {
				t.Errorf("ListPages(%q) diff (-want +got):\n%s", ns, diff)
			}
		})
	}
}
