package pagestore

import (
	"context"
	"sort"
	"sync"
)

// Memory is a store kept in memory. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	pages map[string][]string

	// Err, when not nil, is returned by every call to ListPages
	Err error
}

// NewMemory returns a store with the given pages per namespace.
func NewMemory(pages map[string][]string) *Memory {
	m := &Memory{pages: map[string][]string{}}
	for ns, names := range pages {
		m.Add(ns, names...)
	}
	return m
}

// Add adds pages to a namespace.
func (m *Memory) Add(namespace string, pages ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pages == nil {
		m.pages = map[string][]string{}
	}
	ns := cleanNamespace(namespace)
	m.pages[ns] = append(m.pages[ns], pages...)
}

// ListPages returns the pages of the namespace, sorted by name.
func (m *Memory) ListPages(ctx context.Context, namespace string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	pages := append([]string{}, m.pages[cleanNamespace(namespace)]...)
	sort.Strings(pages)
	return pages, nil
}
