package navbox

import (
	"strconv"
	"strings"
)

// A Kind is the classification of a directive line.
type Kind int

const (
	// KindReset is any line not matching another kind. It closes the current group.
	KindReset Kind = iota
	// KindAutoSubgroup looks like '###!ns ...' and arms automatic subgroups.
	KindAutoSubgroup
	// KindSubgroup looks like '### Heading'.
	KindSubgroup
	// KindGroup looks like '## Heading'.
	KindGroup
	// KindTitle looks like '# Title'.
	KindTitle
	// KindLinks starts with a wiki link '[['.
	KindLinks
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindReset:
		return "Reset"
	case KindAutoSubgroup:
		return "AutoSubgroup"
	case KindSubgroup:
		return "Subgroup"
	case KindGroup:
		return "Group"
	case KindTitle:
		return "Title"
	case KindLinks:
		return "Links"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

// An Automation is a directive generating content from an external source.
type Automation int

const (
	AutoNone Automation = iota
	AutoNamespace
	AutoTree
	AutoTag
)

var automationWords = map[string]Automation{
	"!ns":   AutoNamespace,
	"!tree": AutoTree,
	"!tag":  AutoTag,
}

// String returns the directive word of the Automation.
func (a Automation) String() string {
	for word, auto := range automationWords {
		if auto == a {
			return word
		}
	}
	return "none"
}

const (
	titleMarker    = "#"
	groupMarker    = "##"
	subgroupMarker = "###"
	autoMarker     = "!"
	linkOpen       = "[["
)

// The rules are tested in order and the first match wins, so longer markers
// must come before their prefixes.
var lineRules = []struct {
	kind  Kind
	match string // prefix selecting the rule
	strip string // prefix consumed before the payload
}{
	{KindAutoSubgroup, subgroupMarker + autoMarker, subgroupMarker},
	{KindSubgroup, subgroupMarker, subgroupMarker},
	{KindGroup, groupMarker, groupMarker},
	{KindTitle, titleMarker, titleMarker},
	{KindLinks, linkOpen, ""},
}

var listSeparators = strings.NewReplacer(",", "", ";", "")

// Line is a classified directive line.
type Line struct {
	Kind Kind

	// Text is the payload: the heading text, the link markup or the raw line.
	Text string

	// Auto is the automation found in the line, if any, and Args the text after it.
	Auto Automation
	Args string

	// Column is the 1-based position of the automation word in the line.
	Column int
}

// ClassifyLine classifies a trimmed, non-empty line.
func ClassifyLine(line string) Line {
	l := Line{Kind: KindReset}
	rest := line

	for _, rule := range lineRules {
		if strings.HasPrefix(line, rule.match) {
			l.Kind = rule.kind
			rest = strings.TrimPrefix(line, rule.strip)
			break
		}
	}

	// Any line may carry an automation word after the consumed prefix
	before, auto, args, at := cutAutomation(rest)
	if auto != AutoNone {
		l.Auto = auto
		l.Args = args
		l.Column = len(line) - len(rest) + at + 1
	}

	switch l.Kind {
	case KindLinks:
		l.Text = strings.TrimSpace(listSeparators.Replace(before))
	case KindReset:
		l.Text = before
	default:
		l.Text = strings.TrimSpace(before)
	}

	return l
}

// cutAutomation finds the first automation word in s which is not inside a link.
// It returns the text before the word, the automation, the text after the word
// and the offset of the word in s.
func cutAutomation(s string) (before string, auto Automation, args string, at int) {
	i := 0
	for i < len(s) {

		// Skip the blanks before the word
		for i < len(s) && isBlank(s[i]) {
			i++
		}
		start := i

		// And read the word
		for i < len(s) && !isBlank(s[i]) {
			i++
		}
		word := s[start:i]

		a, ok := automationWords[word]
		if !ok {
			continue
		}

		// Words inside a link are part of the link text
		if strings.Count(s[:start], "[[") > strings.Count(s[:start], "]]") {
			continue
		}

		return strings.TrimSpace(s[:start]), a, strings.TrimSpace(s[i:]), start
	}

	return s, AutoNone, "", -1
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
