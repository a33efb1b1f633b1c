package navbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFrontMatter(t *testing.T) {
	text := "---\n" +
		"navbox:\n" +
		"  namespace: \"wiki:plugins\"\n" +
		"  baseURL: \"/w/\"\n" +
		"  camelCase: \"true\"\n" +
		"---\n" +
		"<navbox>\n"

	meta, rest, lines, err := SplitFrontMatter(text)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "<navbox>\n", rest)
	assert.Equal(t, 6, lines)

	cfg := ConfigFromYAML(meta)
	assert.Equal(t, "wiki:plugins", cfg.Namespace)
	assert.Equal(t, "/w/", cfg.BaseURL)
	assert.True(t, cfg.CamelCase)

	// Not in the front matter
	assert.Equal(t, defaultMediaURL, cfg.MediaURL)
	assert.Equal(t, "github", cfg.CodeStyle)
}

func TestSplitFrontMatter_None(t *testing.T) {
	meta, rest, lines, err := SplitFrontMatter("# Title\n---\n")
	assert.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, "# Title\n---\n", rest)
	assert.Equal(t, 0, lines)

	assert.Equal(t, DefaultConfig(), ConfigFromYAML(meta))
}

func TestSplitFrontMatter_Unterminated(t *testing.T) {
	_, rest, _, err := SplitFrontMatter("---\nnavbox:\n  namespace: wiki\n")
	assert.Error(t, err)
	assert.Equal(t, "---\nnavbox:\n  namespace: wiki\n", rest)
}

func TestConfig_Links(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CamelCase = true

	links := cfg.Links()
	assert.Equal(t, &WikiLinks{BaseURL: defaultBaseURL, MediaURL: defaultMediaURL, CamelCase: true}, links)
}
