package navbox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightSource(t *testing.T) {
	got, err := HighlightSource(lines("# Title", "## Group", "[[wiki:a]]"), "github")
	if !assert.NoError(t, err) {
		return
	}

	assert.True(t, strings.HasPrefix(got, `<div class="codecolor">`))
	assert.Contains(t, got, "<pre class='nohighlight precolor'>")
	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "Group")

	empty, err := HighlightSource("", "github")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHighlightTo(t *testing.T) {
	var b bytes.Buffer
	err := HighlightTo(&b, "navbox:\n  title: T\n", "yaml", "monokai")
	assert.NoError(t, err)
	assert.Contains(t, b.String(), "navbox")
	assert.Contains(t, b.String(), "\x1b[")
}
