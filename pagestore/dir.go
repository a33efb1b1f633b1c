package pagestore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// PageExt is the extension of page files in a pages directory.
const PageExt = ".txt"

// DirStore lists the pages of a wiki stored as files, where every namespace
// is a directory and every page a file with extension PageExt.
type DirStore struct {
	Root string
}

// NewDirStore returns a DirStore for the pages under root.
func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

// dir returns the directory holding the pages of a namespace, and false if the
// namespace points outside of the root.
func (d *DirStore) dir(namespace string) (string, bool) {
	ns := cleanNamespace(namespace)
	if len(ns) == 0 {
		return d.Root, true
	}

	dir := filepath.Join(d.Root, filepath.Join(strings.Split(ns, Separator)...))

	rel, err := filepath.Rel(d.Root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return dir, true
}

// ListPages returns the pages directly inside the namespace, sorted by name.
// A namespace without directory has no pages, and neither has one that climbs
// above the root, like '..:other'.
func (d *DirStore) ListPages(ctx context.Context, namespace string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, ok := d.dir(namespace)
	if !ok {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "could not read namespace "+namespace)
	}

	pages := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != PageExt {
			continue
		}
		pages = append(pages, strings.TrimSuffix(e.Name(), PageExt))
	}
	sort.Strings(pages)

	return pages, nil
}

// Walk calls fn for every page under the root, with its namespace, name and file path.
func (d *DirStore) Walk(ctx context.Context, fn func(namespace string, page string, path string) error) error {
	err := filepath.WalkDir(d.Root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != PageExt {
			return nil
		}

		rel, err := filepath.Rel(d.Root, filepath.Dir(path))
		if err != nil {
			return err
		}

		ns := ""
		if rel != "." {
			ns = strings.Join(strings.Split(filepath.ToSlash(rel), "/"), Separator)
		}

		return fn(ns, strings.TrimSuffix(e.Name(), PageExt), path)
	})

	return errors.Wrap(err, "could not walk pages in "+d.Root)
}
