package xml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Paragraph is w:p.
type Paragraph struct {
	Properties *ParagraphProperties
	Runs       []Run
}

func (p Paragraph) isBodyElement() {}

// AddRun appends a plain run and returns it for further styling.
func (p *Paragraph) AddRun(text string) *Run {
	p.Runs = append(p.Runs, Run{Text: text})
	return &p.Runs[len(p.Runs)-1]
}

// AddBreak appends an empty run carrying a line break.
func (p *Paragraph) AddBreak() *Run {
	p.Runs = append(p.Runs, Run{Break: &Break{}})
	return &p.Runs[len(p.Runs)-1]
}

// Props returns the paragraph properties, creating them when absent.
func (p *Paragraph) Props() *ParagraphProperties {
	if p.Properties == nil {
		p.Properties = &ParagraphProperties{}
	}
	return p.Properties
}

// UnmarshalXML implements custom XML unmarshaling to preserve run order
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var props ParagraphProperties
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				p.Properties = &props
			case "r":
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, run)
			case "hyperlink", "smartTag", "ins", "fldSimple":
				// descend: these wrap runs that are part of the visible text
				if err := p.UnmarshalXML(d, t); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("p")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil {
		if err := encodeChild(e, p.Properties, "pPr"); err != nil {
			return err
		}
	}

	for i := range p.Runs {
		if err := encodeChild(e, &p.Runs[i], "r"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a paragraph
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for i := range p.Runs {
		sb.WriteString(p.Runs[i].GetText())
	}
	return sb.String()
}

// ParagraphProperties is w:pPr.
type ParagraphProperties struct {
	Style       *Style       `xml:"pStyle"`
	Indentation *Indentation `xml:"ind"`
	Alignment   *Alignment   `xml:"jc"`
}

func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("pPr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := encodeChild(e, p.Style, "pStyle"); err != nil {
			return err
		}
	}

	if p.Indentation != nil {
		if err := encodeChild(e, p.Indentation, "ind"); err != nil {
			return err
		}
	}

	if p.Alignment != nil {
		if err := encodeChild(e, p.Alignment, "jc"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Alignment is w:jc.
type Alignment struct {
	Val string `xml:"val,attr"`
}

func (a Alignment) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("jc"), Attr: []xml.Attr{wattr("val", a.Val)}}
	return e.EncodeElement(struct{}{}, start)
}

// Indentation is paragraph indentation in twips. A hanging indent pulls the
// first line left of Left by Hanging twips.
type Indentation struct {
	Left      int `xml:"left,attr"`
	Hanging   int `xml:"hanging,attr"`
	FirstLine int `xml:"firstLine,attr"`
}

// FirstLineOffset returns the first line position relative to Left.
func (i Indentation) FirstLineOffset() int {
	return i.FirstLine - i.Hanging
}

func (i Indentation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("ind"), Attr: []xml.Attr{wattrInt("left", i.Left)}}
	switch {
	case i.Hanging > 0:
		start.Attr = append(start.Attr, wattrInt("hanging", i.Hanging))
	case i.FirstLine > 0:
		start.Attr = append(start.Attr, wattrInt("firstLine", i.FirstLine))
	}
	return e.EncodeElement(struct{}{}, start)
}
