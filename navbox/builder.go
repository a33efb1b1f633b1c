package navbox

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNoContent is returned when there is nothing to process.
var ErrNoContent = errors.New("no content")

// Options configures a single call to Parse.
type Options struct {
	// Filename is used only in diagnostics.
	Filename string

	// LineOffset is the number of lines in Filename before the source, so that
	// diagnostics refer to lines of the whole file.
	LineOffset int

	// Lister and Page are used by the '!ns' automation. Both may be nil.
	Lister PageLister
	Page   PageContext

	Log *zap.SugaredLogger
}

type mode int

const (
	modeNone mode = iota
	modeGroup
	modeSubgroup
)

// builder folds the directive lines of one navbox into a Document.
// A builder is used for a single call to Parse and then discarded.
type builder struct {
	ctx context.Context
	log *zap.SugaredLogger

	fileName   string
	lineOffset int

	expander NamespaceExpander

	doc *Document

	// The group being built, not yet in the document
	pending *Group

	mode     mode
	subgroup string

	// autoArmed makes '!ns' produce subgroups of the pending group
	autoArmed bool

	// Title set by the keyword grammar for the next items
	itemsTitle string

	// lineNumber is the number of the line being processed, starting at 1
	lineNumber int

	warnings []*SyntaxError
}

// Parse builds the Document described by the directive lines in src, which is the
// content of a <navbox> block without the tags.
// Problems found in the source never stop parsing: they are returned as warnings
// and the document contains whatever could be understood.
func Parse(ctx context.Context, src string, opts Options) (*Document, []*SyntaxError) {
	b := newBuilder(ctx, opts)

	s := bufio.NewScanner(strings.NewReader(src))

	// Any line of the block must fit, like a long pasted list of links
	s.Buffer(make([]byte, 0, 64*1024), len(src)+1)

	for s.Scan() {
		b.lineNumber++

		line := strings.TrimSpace(s.Text())
		if len(line) == 0 {
			continue
		}

		b.processLine(line)
	}

	if err := s.Err(); err != nil {
		b.warn(1, fmt.Sprintf("reading navbox source: %v", err))
	}

	// The last group is still pending at the end of the input
	b.flush()

	b.log.Debugw("navbox parsed", "file", b.fileName, "lines", b.lineNumber, "doc", b.doc.String())

	return b.doc, b.warnings
}

func newBuilder(ctx context.Context, opts Options) *builder {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &builder{
		ctx:        ctx,
		log:        log,
		fileName:   opts.Filename,
		lineOffset: opts.LineOffset,
		expander: NamespaceExpander{
			Lister: opts.Lister,
			Page:   opts.Page,
		},
		doc: &Document{},
	}
}

func (b *builder) processLine(line string) {

	// Lines starting with a keyword use the argument grammar
	if args := ScanArgs(line); len(args) > 0 && isKeyword(args[0]) {
		b.processKeyword(args)
		return
	}

	l := ClassifyLine(line)

	switch l.Kind {
	case KindAutoSubgroup:
		b.autoArmed = true

	case KindSubgroup:
		b.mode = modeSubgroup
		b.subgroup = l.Text

	case KindGroup:
		b.flush()
		b.pending = &Group{Name: l.Text}
		b.mode = modeGroup
		b.subgroup = ""

	case KindTitle:
		// The last title wins
		b.doc.Title = l.Text

	case KindLinks:
		b.addLinks(l.Text)

	case KindReset:
		b.mode = modeNone
		b.subgroup = ""
		b.flush()
	}

	// Automations are processed after the line itself
	switch l.Auto {
	case AutoNamespace:
		b.expandNamespace(l)
	case AutoTree, AutoTag:
		b.log.Debugw("automation not implemented", "auto", l.Auto.String(), "line", b.currentLineNum())
	}
}

// addLinks stores a link list in the subgroup selected by the current mode.
func (b *builder) addLinks(links string) {
	if len(links) == 0 {
		return
	}

	if b.pending == nil || b.mode == modeNone {
		b.warn(1, "links outside of a group are ignored")
		return
	}

	key := DefaultKey
	if b.mode == modeSubgroup {
		key = b.subgroup
	}

	b.pending.appendLinks(key, links)
}

func (b *builder) expandNamespace(l Line) {
	args := ScanArgs(l.Args)
	b.checkBadLinks(args, l.Column)

	listing, problems := b.expander.Expand(b.ctx, args)
	for _, problem := range problems {
		b.warn(l.Column, problem)
	}

	b.log.Debugw("namespace expanded", "namespace", listing.Namespace, "pages", len(listing.Links), "auto", b.autoArmed)

	if b.autoArmed && b.pending != nil {
		// A subgroup of the current group
		b.pending.appendLinks(listing.Title, listing.Links...)
		return
	}

	// A new top level group which receives the following links
	b.flush()
	b.pending = &Group{Name: listing.Title}
	b.pending.appendLinks(DefaultKey, listing.Links...)
	b.mode = modeGroup
	b.subgroup = ""
}

// processKeyword handles a line of the argument grammar, where args[0] is the keyword.
func (b *builder) processKeyword(args []string) {
	keyword := args[0]

	// In this case, we only have the keyword, this is invalid, skip it
	if len(args) < 2 {
		b.warn(1, fmt.Sprintf("missing arguments for %s", keyword))
		return
	}

	b.checkBadLinks(args, 1)

	switch keyword {
	case keywordTitle:
		b.doc.Title = args[1]

	case keywordGroupTitle:
		b.itemsTitle = args[1]

	case keywordGroupItems:
		// Groups from headings end here, to keep the order of the source
		b.mode = modeNone
		b.flush()

		g := &Group{Name: b.itemsTitle}
		g.appendLinks(DefaultKey, args[1:]...)
		b.doc.Groups = append(b.doc.Groups, g)

		b.itemsTitle = ""
	}
}

func (b *builder) checkBadLinks(args []string, column int) {
	for _, arg := range args {
		if arg == BadLink {
			b.warn(column, "link opened inside another link")
		}
	}
}

// flush appends the pending group to the document. A group without any
// subgroup is dropped.
func (b *builder) flush() {
	if b.pending == nil {
		return
	}

	if len(b.pending.Subgroups) > 0 {
		b.doc.Groups = append(b.doc.Groups, b.pending)
	} else {
		b.log.Debugw("empty group dropped", "group", b.pending.Name, "line", b.currentLineNum())
	}

	b.pending = nil
	b.autoArmed = false
}

func (b *builder) currentLineNum() int {
	return b.lineOffset + b.lineNumber
}

func (b *builder) warn(column int, msg string) {
	se := &SyntaxError{
		Filename: b.fileName,
		Line:     b.currentLineNum(),
		Column:   column,
		Msg:      msg,
	}
	b.warnings = append(b.warnings, se)
	b.log.Warnw("navbox syntax", "error", se.Error())
}
