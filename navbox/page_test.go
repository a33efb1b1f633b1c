package navbox

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pageText = lines(
	"====== Page ======",
	"Intro",
	"<navbox>",
	"# Nav",
	"## G",
	"[[a]]",
	"</navbox>",
	"middle",
	"<navbox>",
	"[[orphan]]",
	"</navbox>",
	"end",
)

func TestProcessor_Blocks(t *testing.T) {
	pr := &Processor{Lister: testLister(), Filename: "page.txt"}
	page := NewPage("wiki")

	blocks := pr.Blocks(context.Background(), page, pageText)
	if !assert.Len(t, blocks, 2) {
		return
	}

	assert.Equal(t, 3, blocks[0].Line)
	assert.Equal(t, "Nav", blocks[0].Doc.Title)
	assert.Empty(t, blocks[0].Warnings)
	assert.Contains(t, blocks[0].HTML, `<span class="pgnb_title_text">Nav</span>`)

	assert.Equal(t, 9, blocks[1].Line)
	assert.Empty(t, blocks[1].Doc.Groups)
	if assert.Len(t, blocks[1].Warnings, 1) {
		assert.Equal(t, 10, blocks[1].Warnings[0].Line)
	}

	assert.False(t, page.Cache)
}

func TestProcessor_Expand(t *testing.T) {
	pr := &Processor{Filename: "page.txt", LineOffset: 4}
	page := NewPage("wiki")

	got := pr.Expand(context.Background(), page, pageText)

	assert.NotContains(t, got, "<navbox>")
	assert.NotContains(t, got, "</navbox>")
	assert.True(t, strings.HasPrefix(got, "====== Page ======\nIntro\n<div class=\"pgnb_container\">"))
	assert.True(t, strings.HasSuffix(got, "</table></div>\nend"))
	assert.Contains(t, got, "\nmiddle\n"+`<div class="pgnb_warning">page.txt:14:1: links outside of a group are ignored</div>`+`<div class="pgnb_container">`)
	assert.Equal(t, 2, strings.Count(got, `<div class="pgnb_container">`))
}

func TestProcessor_NoBlocks(t *testing.T) {
	pr := &Processor{}
	page := NewPage("wiki")

	text := "no navbox here\n<navbox> unterminated"
	assert.Equal(t, text, pr.Expand(context.Background(), page, text))
	assert.True(t, page.Cache)
}

func TestProcessor_Mode(t *testing.T) {
	pr := &Processor{Mode: "metadata"}
	page := NewPage("wiki")

	blocks := pr.Blocks(context.Background(), page, "<navbox>\n# T\n</navbox>")
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, "T", blocks[0].Doc.Title)
		assert.Empty(t, blocks[0].HTML)
	}
	assert.True(t, page.Cache)
}

func TestProcessor_NilPage(t *testing.T) {
	pr := &Processor{Lister: testLister()}

	blocks := pr.Blocks(context.Background(), nil, lines("<navbox>", "# T", "## G", "[[a]]", "!ns", "</navbox>"))
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, "T", blocks[0].Doc.Title)
		assert.Len(t, blocks[0].Doc.Groups, 2)
		assert.Contains(t, blocks[0].HTML, `<th class="pgnb_group_title">G</th>`)
	}
}
