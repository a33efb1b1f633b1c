package navbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Line
	}{
		{
			name: "auto subgroup before subgroup",
			line: "###!ns +n wiki",
			want: Line{Kind: KindAutoSubgroup, Auto: AutoNamespace, Args: "+n wiki", Column: 4},
		},
		{
			name: "subgroup",
			line: "### Plugins",
			want: Line{Kind: KindSubgroup, Text: "Plugins"},
		},
		{
			name: "group",
			line: "## Group A",
			want: Line{Kind: KindGroup, Text: "Group A"},
		},
		{
			name: "group with automation",
			line: "## Group !ns",
			want: Line{Kind: KindGroup, Text: "Group", Auto: AutoNamespace, Column: 10},
		},
		{
			name: "title",
			line: "# My Title",
			want: Line{Kind: KindTitle, Text: "My Title"},
		},
		{
			name: "title with link",
			line: "#[[wiki:start|Start]]",
			want: Line{Kind: KindTitle, Text: "[[wiki:start|Start]]"},
		},
		{
			name: "links without separators",
			line: "[[a]], [[b]]; [[c]]",
			want: Line{Kind: KindLinks, Text: "[[a]] [[b]] [[c]]"},
		},
		{
			name: "automation word inside link",
			line: "[[a !ns b]]",
			want: Line{Kind: KindLinks, Text: "[[a !ns b]]"},
		},
		{
			name: "namespace listing",
			line: "!ns +nt [[wiki|The Wiki]]",
			want: Line{Kind: KindReset, Auto: AutoNamespace, Args: "+nt [[wiki|The Wiki]]", Column: 1},
		},
		{
			name: "tree",
			line: "!tree",
			want: Line{Kind: KindReset, Auto: AutoTree, Column: 1},
		},
		{
			name: "anything else",
			line: "plain text",
			want: Line{Kind: KindReset, Text: "plain text"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLine(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClassifyLine(%q) diff (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindAutoSubgroup.String(); got != "AutoSubgroup" {
		t.Errorf("String() = %q", got)
	}
	if got := Kind(42).String(); got != "Invalid(42)" {
		t.Errorf("String() = %q", got)
	}
	if got := AutoTag.String(); got != "!tag" {
		t.Errorf("String() = %q", got)
	}
}
