package navbox

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// lexer returns the chroma lexer with the given name, guessing from the content
// when there is no such lexer.
func lexer(name string, content string) chroma.Lexer {
	l := lexers.Get(name)
	if l == nil {
		l = lexers.Analyse(content)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// HighlightSource returns the HTML of a navbox source, highlighted with the chroma
// style styleName. The directives are close enough to markdown to use its lexer.
func HighlightSource(src string, styleName string) (string, error) {
	if len(src) == 0 {
		return "", nil
	}

	l := lexer("markdown", src)
	s := styles.Get(styleName)

	// Get the HTML formatter
	f := hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true))

	it, err := l.Tokenise(nil, src)
	if err != nil {
		return "", fmt.Errorf("tokenising navbox source: %w", err)
	}

	br := &ByteRenderer{}
	br.Renderln(`<div class="codecolor">`)
	br.Renderln("<pre class='nohighlight precolor'>")
	rb := &bytes.Buffer{}
	if err := f.Format(rb, s, it); err != nil {
		return "", fmt.Errorf("formatting navbox source: %w", err)
	}
	br.Render(rb.Bytes())
	br.Render("</pre>")
	br.Renderln(`</div>`)

	return br.String(), nil
}

// HighlightTo writes src to w highlighted for a terminal, using the lexer
// lexerName and the chroma style styleName.
func HighlightTo(w io.Writer, src string, lexerName string, styleName string) error {
	l := lexer(lexerName, src)

	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}

	it, err := l.Tokenise(nil, src)
	if err != nil {
		return err
	}

	return f.Format(w, styles.Get(styleName), it)
}
