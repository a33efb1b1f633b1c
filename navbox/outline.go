package navbox

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// OutlineD2 describes the structure of doc as a D2 diagram: the title, its groups
// and their subgroups, with the number of links of each list.
func OutlineD2(doc *Document) string {
	br := &ByteRenderer{}
	br.Renderln("direction: right")

	title := doc.Title
	if len(title) == 0 {
		title = "navbox"
	}
	br.Renderln("nb: ", d2Label(title))

	for i, g := range doc.Groups {
		gid := fmt.Sprintf("g%d", i)
		br.Renderln(gid, ": ", d2Label(g.Name))
		br.Renderln("nb -> ", gid)

		for j, s := range g.Subgroups {
			sid := fmt.Sprintf("%s_s%d", gid, j)
			label := s.Key
			if s.IsDefault() {
				label = "(links)"
			}
			br.Renderln(sid, ": ", d2Label(fmt.Sprintf("%s: %d", label, len(s.Links))))
			br.Renderln(gid, " -> ", sid)
		}
	}

	return br.String()
}

// d2Label quotes a label so that D2 takes it literally.
func d2Label(s string) string {
	return strconv.Quote(strings.TrimSpace(s))
}

// OutlineSVG renders the outline of doc as an SVG image, generated by the embedded D2 processor.
func OutlineSVG(ctx context.Context, doc *Document) ([]byte, error) {
	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, fmt.Errorf("creating D2 ruler: %w", err)
	}

	defaultLayout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(ctx, OutlineD2(doc), &d2lib.CompileOptions{
		Layout: defaultLayout,
		Ruler:  ruler,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling outline: %w", err)
	}

	return d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
}
