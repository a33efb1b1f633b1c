// Package pagestore provides the sources of page names used to expand
// namespace listings: the pages directory of a wiki, a bbolt index of it
// and an in-memory store for tests and tools.
package pagestore

import (
	"context"
	"strings"
)

// Separator separates the components of a namespace, like 'wiki:projects'.
const Separator = ":"

// Lister is implemented by every store in this package.
type Lister interface {
	ListPages(ctx context.Context, namespace string) ([]string, error)
}

// cleanNamespace removes blanks and the leading or trailing separators of a namespace.
func cleanNamespace(ns string) string {
	return strings.Trim(strings.TrimSpace(ns), Separator)
}

var (
	_ Lister = (*DirStore)(nil)
	_ Lister = (*BoltStore)(nil)
	_ Lister = (*Memory)(nil)
)
