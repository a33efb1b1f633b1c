package navbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanArgs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "quotes and links",
			line: `nb-title "Hello World" [[wiki:a b]]`,
			want: []string{"nb-title", "Hello World", "[[wiki:a b]]"},
		},
		{
			name: "runs of spaces",
			line: "nbg-items   a    b ",
			want: []string{"nbg-items", "a", "b"},
		},
		{
			name: "empty quotes",
			line: `nbg-title ""`,
			want: []string{"nbg-title", ""},
		},
		{
			name: "link with title",
			line: `+nt [[wiki:plugins|All plugins]]`,
			want: []string{"+nt", "[[wiki:plugins|All plugins]]"},
		},
		{
			name: "link glued to text",
			line: `see[[a]]after`,
			want: []string{"see[[a]]", "after"},
		},
		{
			name: "link inside link",
			line: `[[a [[b]] c`,
			want: []string{BadLink, "[b]]", "c"},
		},
		{
			name: "quote inside link is literal",
			line: `[[a "b" c]]`,
			want: []string{`[[a "b" c]]`},
		},
		{
			name: "brackets inside quotes are literal",
			line: `"[[not a link" x`,
			want: []string{"[[not a link", "x"},
		},
		{
			name: "unterminated quote",
			line: `a "b c`,
			want: []string{"a", "b c"},
		},
		{
			name: "unterminated link",
			line: `a [[b c`,
			want: []string{"a", "[[b c"},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanArgs(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScanArgs(%q) diff (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}
