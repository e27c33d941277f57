// Package htmldocx renders a small markup dialect (tables, paragraphs, emphasis, line
// breaks and bulleted lists) into WordprocessingML blocks and splices them into a
// document in place of {{name}} placeholder paragraphs.
//
// Supported markup:
//
//	<table style="border:1px solid #c1c6cc">
//	  <colgroup><col width="60%"><col width="40%"></colgroup>
//	  <tr style="background-color:#ffffff">
//	    <th style="border:1px solid; text-align:center; color:#333333">Finding</th>
//	    <td style="background-color:#b0e396"><b>Yes</b><br>note<ul><li>item</li></ul></td>
//	  </tr>
//	</table>
//	<p style="color:#718096; font-style:italic">plain <b>bold</b> <i>italic</i></p>
//
// Anything else is ignored. Malformed style fragments are skipped; a color that is not
// hex or a column width that is not a number fails the render.
package htmldocx

import (
	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

// Render parses markup and converts its top-level tables and paragraphs into body
// elements, in document order. Empty markup renders to no elements.
func Render(markup string) ([]wml.BodyElement, error) {
	nodes, err := Parse(markup)
	if err != nil {
		return nil, err
	}

	var elems []wml.BodyElement
	for _, n := range nodes {
		switch n.Kind {
		case KindTable:
			tbl, err := RenderTable(n)
			if err != nil {
				return nil, err
			}
			if tbl != nil {
				elems = append(elems, tbl)
			}
		case KindParagraph:
			p, err := RenderParagraph(n)
			if err != nil {
				return nil, err
			}
			elems = append(elems, p)
		case KindText, KindColGroup, KindCol, KindRow, KindCell, KindBold, KindItalic,
			KindBreak, KindList, KindListItem, KindOther:
			// only tables and paragraphs are block content
		}
	}
	return elems, nil
}
