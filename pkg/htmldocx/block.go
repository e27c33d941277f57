package htmldocx

import (
	"fmt"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

// RenderParagraph converts a top-level p node into a paragraph. Emphasis children
// become one run each; any other child contributes its flattened text.
//
// The paragraph's own color and font-style:italic are applied once all runs exist,
// so they reach every run of the paragraph.
func RenderParagraph(n *Node) (*wml.Paragraph, error) {
	p := &wml.Paragraph{}
	for _, child := range n.Children {
		switch child.Kind {
		case KindBold:
			p.AddRun(child.Flatten()).Props().Bold = &wml.Empty{}
		case KindItalic:
			p.AddRun(child.Flatten()).Props().Italic = &wml.Empty{}
		case KindText, KindBreak, KindList, KindListItem, KindTable, KindColGroup,
			KindCol, KindRow, KindCell, KindParagraph, KindOther:
			if text := child.Flatten(); text != "" {
				p.AddRun(text)
			}
		}
	}

	if v := n.Style["color"]; v != "" {
		color, err := hexColor(v)
		if err != nil {
			return nil, fmt.Errorf("paragraph color: %w", err)
		}
		for i := range p.Runs {
			p.Runs[i].Props().Color = &wml.Color{Val: color}
		}
	}
	if n.Style["font-style"] == "italic" {
		for i := range p.Runs {
			p.Runs[i].Props().Italic = &wml.Empty{}
		}
	}
	return p, nil
}
