package navbox

import (
	"fmt"
	"strings"
)

// DefaultKey is the reserved subgroup key for links attached directly to a group,
// without a subgroup heading.
const DefaultKey = "default"

// LinkList is an ordered list of raw link markup, not yet resolved to HTML.
// Each element is passed whole to the LinkAdapter at render time.
type LinkList []string

// Subgroup is one entry of the ordered subgroup mapping of a Group.
type Subgroup struct {
	Key   string   `yaml:"key"`
	Links LinkList `yaml:"links"`
}

// IsDefault returns true for the subgroup holding the links without heading.
func (s *Subgroup) IsDefault() bool {
	return s.Key == DefaultKey
}

// Group is a top level section of a navbox, rendered as one row of the table.
type Group struct {
	Name      string      `yaml:"name"`
	Subgroups []*Subgroup `yaml:"subgroups"`
}

// Subgroup returns the subgroup with the given key, or nil if there is none.
func (g *Group) Subgroup(key string) *Subgroup {
	for _, s := range g.Subgroups {
		if s.Key == key {
			return s
		}
	}
	return nil
}

// Named returns the subgroups with a heading, in insertion order.
func (g *Group) Named() []*Subgroup {
	var named []*Subgroup
	for _, s := range g.Subgroups {
		if !s.IsDefault() {
			named = append(named, s)
		}
	}
	return named
}

// appendLinks adds links to the subgroup with the given key, creating it at the end
// of the mapping if it does not exist yet.
func (g *Group) appendLinks(key string, links ...string) {
	s := g.Subgroup(key)
	if s == nil {
		s = &Subgroup{Key: key}
		g.Subgroups = append(g.Subgroups, s)
	}
	s.Links = append(s.Links, links...)
}

// Document is the result of parsing the content of one <navbox> block.
type Document struct {
	Title  string   `yaml:"title"`
	Groups []*Group `yaml:"groups"`
}

// String returns a compact representation of the document, useful for tracing.
func (d *Document) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "navbox %q", d.Title)
	for _, g := range d.Groups {
		fmt.Fprintf(&sb, " [%q", g.Name)
		for _, s := range g.Subgroups {
			fmt.Fprintf(&sb, " %s:%d", s.Key, len(s.Links))
		}
		sb.WriteString("]")
	}
	return sb.String()
}

// SyntaxError is a non-fatal problem found while parsing a navbox.
// Parsing always continues after a SyntaxError is recorded.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}
