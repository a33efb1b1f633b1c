package navbox

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	blockStart = "<navbox>"
	blockEnd   = "</navbox>"
)

// reNavboxBlock detects the blocks that need special processing. The content may span lines.
var reNavboxBlock = regexp.MustCompile(`(?s)<navbox>.*?</navbox>`)

// Page is a wiki page being processed.
type Page struct {
	// NS is the namespace of the page, used by '!ns' without arguments
	NS string

	// Cache is true while the page can be cached. Rendering a navbox clears it.
	Cache bool
}

// NewPage returns a cacheable page in the given namespace.
func NewPage(namespace string) *Page {
	return &Page{NS: namespace, Cache: true}
}

func (p *Page) Namespace() string {
	return p.NS
}

func (p *Page) DisableCache() {
	p.Cache = false
}

// Block is one <navbox> block found in a page.
type Block struct {
	// Source is the content between the tags
	Source string

	// Line is the 1-based line of the start tag in the page
	Line int

	Doc      *Document
	Warnings []*SyntaxError
	HTML     string
}

// Processor finds the navbox blocks of a page, parses and renders them.
type Processor struct {
	Lister PageLister
	Links  LinkAdapter
	Log    *zap.SugaredLogger

	// Filename is used only in diagnostics
	Filename string

	// Mode is the output mode requested from the Renderer, ModeXHTML when empty
	Mode string

	// LineOffset is the number of lines of the file before the text, like a front matter
	LineOffset int
}

func (pr *Processor) logger() *zap.SugaredLogger {
	if pr.Log == nil {
		return zap.NewNop().Sugar()
	}
	return pr.Log
}

// Blocks parses and renders every navbox block in text, in order of appearance.
func (pr *Processor) Blocks(ctx context.Context, page *Page, text string) []*Block {
	log := pr.logger()

	mode := pr.Mode
	if len(mode) == 0 {
		mode = ModeXHTML
	}

	renderer := NewRenderer(pr.Links, log)

	// A nil *Page must reach Parse and Render as nil interfaces
	var ctxPage PageContext
	var cache CachePolicy
	if page != nil {
		ctxPage = page
		cache = page
	}

	var blocks []*Block
	for _, m := range reNavboxBlock.FindAllStringIndex(text, -1) {
		source := strings.TrimSuffix(strings.TrimPrefix(text[m[0]:m[1]], blockStart), blockEnd)

		// Lines before the block, so that warnings point to the right place in the file
		before := strings.Count(text[:m[0]], "\n")

		doc, warnings := Parse(ctx, source, Options{
			Filename:   pr.Filename,
			LineOffset: pr.LineOffset + before,
			Lister:     pr.Lister,
			Page:       ctxPage,
			Log:        log,
		})

		html, _ := renderer.Render(mode, cache, doc)

		blocks = append(blocks, &Block{
			Source:   source,
			Line:     pr.LineOffset + before + 1,
			Doc:      doc,
			Warnings: warnings,
			HTML:     html,
		})
	}

	log.Debugw("navbox blocks processed", "file", pr.Filename, "blocks", len(blocks))

	return blocks
}

// Expand returns text with every navbox block replaced by its HTML.
func (pr *Processor) Expand(ctx context.Context, page *Page, text string) string {
	return Substitute(text, pr.Blocks(ctx, page, text))
}

// Substitute replaces the navbox blocks of text with the HTML of blocks, which
// must be the result of Blocks for the same text.
// The warnings of a block are shown just before it.
func Substitute(text string, blocks []*Block) string {
	if len(blocks) == 0 {
		return text
	}

	br := &ByteRenderer{}
	last := 0
	for i, m := range reNavboxBlock.FindAllStringIndex(text, len(blocks)) {
		br.Render(text[last:m[0]])

		b := blocks[i]
		for _, w := range b.Warnings {
			br.Render(`<div class="pgnb_warning">`, escapeHTML(w.Error()), "</div>")
		}
		br.Render(b.HTML)

		last = m[1]
	}
	br.Render(text[last:])

	return br.String()
}
