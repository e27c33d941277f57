package htmldocx

import (
	"strings"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
	"github.com/benjaminschreck/go-scorecard/pkg/palette"
)

// renderCellContent walks the direct children of a markup cell. Text, emphasis and
// breaks go to the cell's first paragraph; each list item becomes a paragraph of its
// own after it.
func renderCellContent(tc *wml.TableCell, cell *Node) {
	if len(tc.Paragraphs) == 0 {
		tc.AddParagraph()
	}
	for _, child := range cell.Children {
		// re-read each time: AddParagraph may move the slice
		p := &tc.Paragraphs[0]
		switch child.Kind {
		case KindText:
			if text := strings.TrimRight(child.Text, "\n"); text != "" {
				p.AddRun(text)
			}
		case KindBold:
			p.AddRun(strings.TrimSpace(child.Flatten())).Props().Bold = &wml.Empty{}
		case KindItalic:
			p.AddRun(strings.TrimSpace(child.Flatten())).Props().Italic = &wml.Empty{}
		case KindBreak:
			p.AddBreak()
		case KindList:
			for _, li := range child.FindAll(KindListItem) {
				addListItem(tc, strings.TrimSpace(li.Flatten()))
			}
		case KindOther, KindTable, KindColGroup, KindCol, KindRow, KindCell, KindParagraph, KindListItem:
			// not rendered inside cells
		}
	}
}

func addListItem(tc *wml.TableCell, text string) {
	lp := tc.AddParagraph()
	lp.AddRun(palette.Bullet)
	lp.AddRun(text)
	lp.Props().Indentation = &wml.Indentation{Left: palette.ListIndent, Hanging: palette.ListIndent}
}
