package navbox

import (
	"strings"

	"github.com/hesusruiz/navbox/sliceedit"
	"go.uber.org/zap"
)

// ModeXHTML is the only output mode produced by the Renderer.
const ModeXHTML = "xhtml"

// CachePolicy is implemented by the page being rendered.
type CachePolicy interface {
	DisableCache()
}

// Renderer converts a Document into nested HTML tables.
// A Renderer has no state of its own and can be reused.
type Renderer struct {
	Links LinkAdapter
	Log   *zap.SugaredLogger
}

// NewRenderer returns a Renderer using links to resolve wiki markup.
// A nil links uses a WikiLinks with the default settings.
func NewRenderer(links LinkAdapter, log *zap.SugaredLogger) *Renderer {
	if links == nil {
		links = &WikiLinks{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Renderer{Links: links, Log: log}
}

// Render returns the HTML for doc and true, or false without any output when
// mode is not ModeXHTML.
// Rendering disables caching of the page, because automatic listings change
// independently of the navbox source.
func (r *Renderer) Render(mode string, page CachePolicy, doc *Document) (string, bool) {
	if mode != ModeXHTML {
		r.Log.Debugw("render mode not supported", "mode", mode)
		return "", false
	}

	if page != nil {
		page.DisableCache()
	}

	br := &ByteRenderer{}

	// The title row spans both columns
	br.Render(`<div class="pgnb_container"><table class="pgnb_table">`)
	br.Render(`<tr><th class="pgnb_title" colspan="2"><span class="pgnb_title_text">`)
	br.Render(r.formatted(doc.Title))
	br.Render(`</span></th></tr>`)

	for _, g := range doc.Groups {
		r.renderGroup(br, g)
	}

	br.Render(`</table></div>`)

	return br.String(), true
}

func (r *Renderer) renderGroup(br *ByteRenderer, g *Group) {
	br.Render(`<tr><th class="pgnb_group_title">`, r.formatted(g.Name), `</th><td class="pgnb_group">`)

	// Links without subgroup go first, as an inline list
	if def := g.Subgroup(DefaultKey); def != nil {
		r.renderList(br, def.Links)
	}

	// Every other subgroup is a row of a nested table
	named := g.Named()
	if len(named) > 0 {
		br.Render(`<table class="pgnb_child_table">`)
		for _, s := range named {
			br.Render(`<tr><th class="pgnb_subgroup_title">`, r.formatted(s.Key), `</th><td class="pgnb_subgroup">`)
			r.renderList(br, s.Links)
			br.Render(`</td></tr>`)
		}
		br.Render(`</table>`)
	}

	br.Render(`</td></tr>`)
}

func (r *Renderer) renderList(br *ByteRenderer, links LinkList) {
	br.Render(`<div class="pgnb_list_container" style="padding:0em 0.25em;"><ul class="pgnb_list">`)
	for _, markup := range links {
		br.Render(WrapAnchors([]byte(StripBlock(r.Links.RenderLinks(markup)))))
	}
	br.Render(`</ul></div>`)
}

// formatted returns text as HTML, resolving it through the link adapter only
// when it contains a link.
func (r *Renderer) formatted(text string) string {
	if strings.Contains(text, linkOpen) {
		return StripBlock(r.Links.RenderLinks(text))
	}
	return escapeHTML(text)
}

// WrapAnchors makes a list item of every anchor in frag.
func WrapAnchors(frag []byte) []byte {
	b := sliceedit.NewBuffer(frag)

	// Closing tags first, so that '</li><li>' is the result between two adjacent anchors
	b.InsertAfterAll("</a>", "</li>")
	b.InsertBeforeAll("<a ", "<li>")
	b.InsertBeforeAll("<a>", "<li>")

	return b.Bytes()
}

var blockElements = []string{"p", "div"}

// StripBlock removes the block element enclosing an HTML fragment, if there is one.
func StripBlock(frag string) string {
	frag = strings.TrimSpace(frag)

	for _, name := range blockElements {
		if !strings.HasPrefix(frag, "<"+name) {
			continue
		}

		// The start tag may have attributes
		end := strings.IndexByte(frag, '>')
		if end == -1 {
			break
		}
		tagName, _, _ := strings.Cut(frag[1:end], " ")
		if tagName != name {
			continue
		}

		inner, found := strings.CutSuffix(frag[end+1:], "</"+name+">")
		if !found {
			break
		}
		return strings.TrimSpace(inner)
	}

	return frag
}
