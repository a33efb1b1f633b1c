package navbox

import (
	"fmt"
	"regexp"
	"strings"
)

// LinkAdapter converts wiki markup into HTML.
//
// RenderLinks returns one anchor (or media element) per link construct found in
// markup, with the whole fragment wrapped in a single block element that the
// caller strips before embedding the result in a table cell.
type LinkAdapter interface {
	RenderLinks(markup string) string
}

var escapeHTML = strings.NewReplacer(
	"&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;",
).Replace

// The constructs recognized in link markup. Submatches are, in order:
// the content of [[...]], the content of {{...}} and the address of <...@...>.
var reLinkMarkup = regexp.MustCompile(
	`\[\[(.+?)\]\]` +
		`|\{\{(.+?)\}\}` +
		`|<([\w.+-]+@[\w-]+(?:\.[\w-]+)+)>` +
		`|\b(?:https?|ftp)://[^\s<>"\[\]{}|]+` +
		`|\\\\[\w.$-]+(?:\\[\w.$-]+)+`)

var reCamelCase = regexp.MustCompile(`\b[A-Z]+[a-z]+[A-Z][A-Za-z]*\b`)

const (
	defaultBaseURL  = "/doku.php?id="
	defaultMediaURL = "/lib/exe/fetch.php?media="
)

// WikiLinks is a LinkAdapter for DokuWiki link syntax: internal links,
// external links and bare URLs, email addresses, Windows shares, media
// and, optionally, CamelCase words. Any other text is escaped.
type WikiLinks struct {
	// BaseURL is prepended to page ids, like '/doku.php?id='
	BaseURL string

	// MediaURL is prepended to media ids
	MediaURL string

	// CamelCase enables links from words like 'WikiPage'
	CamelCase bool
}

// RenderLinks converts the markup, wrapping the result in a paragraph.
func (w *WikiLinks) RenderLinks(markup string) string {
	br := &ByteRenderer{}
	br.Render("<p>")

	last := 0
	for _, m := range reLinkMarkup.FindAllStringSubmatchIndex(markup, -1) {

		// The text before the construct
		w.renderText(br, markup[last:m[0]])

		match := markup[m[0]:m[1]]

		switch {
		case m[2] >= 0:
			w.renderLink(br, markup[m[2]:m[3]])
		case m[4] >= 0:
			w.renderMedia(br, markup[m[4]:m[5]])
		case m[6] >= 0:
			address := markup[m[6]:m[7]]
			renderAnchor(br, "mailto:"+address, "mail", address, address)
		case strings.HasPrefix(match, `\\`):
			href := "file:///" + strings.ReplaceAll(strings.TrimPrefix(match, `\\`), `\`, "/")
			renderAnchor(br, href, "windows", match, match)
		default:
			renderAnchor(br, match, "urlextern", match, match)
		}

		last = m[1]
	}
	w.renderText(br, markup[last:])

	br.Render("</p>")
	return br.String()
}

func (w *WikiLinks) renderText(br *ByteRenderer, text string) {
	if !w.CamelCase {
		br.Render(escapeHTML(text))
		return
	}

	last := 0
	for _, m := range reCamelCase.FindAllStringIndex(text, -1) {
		br.Render(escapeHTML(text[last:m[0]]))
		w.renderInternal(br, text[m[0]:m[1]], "", false)
		last = m[1]
	}
	br.Render(escapeHTML(text[last:]))
}

// renderLink renders the content of a [[...]] construct.
func (w *WikiLinks) renderLink(br *ByteRenderer, target string) {
	id, title, hasTitle := strings.Cut(target, "|")
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)

	switch {
	case strings.Contains(id, "://"):
		if !hasTitle {
			title = id
		}
		renderAnchor(br, id, "urlextern", id, title)
	case strings.HasPrefix(id, `\\`):
		if !hasTitle {
			title = id
		}
		href := "file:///" + strings.ReplaceAll(strings.TrimPrefix(id, `\\`), `\`, "/")
		renderAnchor(br, href, "windows", id, title)
	default:
		w.renderInternal(br, id, title, hasTitle)
	}
}

func (w *WikiLinks) renderInternal(br *ByteRenderer, id string, title string, hasTitle bool) {
	page, section, _ := strings.Cut(id, "#")
	page = strings.TrimPrefix(page, ":")

	if !hasTitle {
		title = lastSegment(page)
		if len(title) == 0 {
			title = section
		}
	}

	href := w.baseURL() + page
	if len(section) > 0 {
		href += "#" + section
	}

	renderAnchor(br, href, "wikilink1", page, title)
}

// renderMedia renders the content of a {{...}} construct as an image linked to the file.
func (w *WikiLinks) renderMedia(br *ByteRenderer, target string) {
	id, alt, _ := strings.Cut(target, "|")

	// Blanks around the id only set the alignment
	id = strings.TrimSpace(id)
	id, _, _ = strings.Cut(id, "?")
	alt = strings.TrimSpace(alt)

	src := id
	if !strings.Contains(id, "://") {
		src = w.mediaURL() + strings.TrimPrefix(id, ":")
	}

	br.Render(`<a href="`, escapeHTML(src), `" class="media" title="`, escapeHTML(id), `">`)
	br.Render(`<img src="`, escapeHTML(src), `" class="media" alt="`, escapeHTML(alt), `" />`)
	br.Render(`</a>`)
}

func renderAnchor(br *ByteRenderer, href string, class string, title string, text string) {
	br.Render(fmt.Sprintf(`<a href="%s" class="%s" title="%s">%s</a>`,
		escapeHTML(href), class, escapeHTML(title), escapeHTML(text)))
}

func (w *WikiLinks) baseURL() string {
	if len(w.BaseURL) == 0 {
		return defaultBaseURL
	}
	return w.BaseURL
}

func (w *WikiLinks) mediaURL() string {
	if len(w.MediaURL) == 0 {
		return defaultMediaURL
	}
	return w.MediaURL
}
