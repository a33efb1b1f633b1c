package navbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup_Subgroups(t *testing.T) {
	g := &Group{Name: "G"}
	g.appendLinks("S", "[[a]]")
	g.appendLinks(DefaultKey, "[[b]]")
	g.appendLinks("S", "[[c]]")

	assert.Len(t, g.Subgroups, 2)
	assert.Equal(t, LinkList{"[[a]]", "[[c]]"}, g.Subgroup("S").Links)
	assert.True(t, g.Subgroup(DefaultKey).IsDefault())
	assert.Nil(t, g.Subgroup("missing"))

	named := g.Named()
	if assert.Len(t, named, 1) {
		assert.Equal(t, "S", named[0].Key)
	}
}

func TestDocument_String(t *testing.T) {
	d := &Document{Title: "T", Groups: []*Group{
		{Name: "G", Subgroups: []*Subgroup{{Key: DefaultKey, Links: LinkList{"[[a]]", "[[b]]"}}}},
	}}
	assert.Equal(t, `navbox "T" ["G" default:2]`, d.String())
}

func TestSyntaxError(t *testing.T) {
	se := &SyntaxError{Filename: "page.txt", Line: 3, Column: 5, Msg: "missing arguments for nb-title"}
	assert.Equal(t, "page.txt:3:5: missing arguments for nb-title", se.Error())
}
