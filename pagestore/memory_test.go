package pagestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	m := NewMemory(map[string][]string{
		"wiki": {"syntax", "dokuwiki"},
	})
	m.Add(":wiki:", "welcome")

	got, err := m.ListPages(context.Background(), "wiki")
	assert.NoError(t, err)
	assert.Equal(t, []string{"dokuwiki", "syntax", "welcome"}, got)

	got, err = m.ListPages(context.Background(), "empty")
	assert.NoError(t, err)
	assert.Empty(t, got)

	m.Err = errors.New("backend down")
	_, err = m.ListPages(context.Background(), "wiki")
	assert.EqualError(t, err, "backend down")
}
