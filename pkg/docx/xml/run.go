package xml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Run is a run of text with common properties.
//
// Text may contain "\n" and "\t"; they are written as w:br and w:tab elements so the
// text reads back unchanged through GetText.
type Run struct {
	Properties *RunProperties
	Text       string
	// Break appends an explicit line break after the text
	Break *Break
}

// UnmarshalXML implements custom XML unmarshaling that collects the visible text
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				var props RunProperties
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Properties = &props
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				text.WriteString(s)
			case "tab":
				text.WriteByte('\t')
				if err := d.Skip(); err != nil {
					return err
				}
			case "br", "cr":
				text.WriteByte('\n')
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Text = text.String()
			return nil
		}
	}
	r.Text = text.String()
	return nil
}

func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("r")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := encodeChild(e, r.Properties, "rPr"); err != nil {
			return err
		}
	}

	if err := encodeRunText(e, r.Text); err != nil {
		return err
	}

	if r.Break != nil {
		if err := encodeChild(e, r.Break, "br"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// encodeRunText writes text as w:t segments separated by w:br and w:tab.
func encodeRunText(e *xml.Encoder, s string) error {
	for len(s) > 0 {
		i := strings.IndexAny(s, "\n\t")
		if i < 0 {
			return encodeChild(e, Text{Content: s}, "t")
		}
		if i > 0 {
			if err := encodeChild(e, Text{Content: s[:i]}, "t"); err != nil {
				return err
			}
		}
		var err error
		if s[i] == '\n' {
			err = encodeChild(e, &Break{}, "br")
		} else {
			err = encodeChild(e, Empty{}, "tab")
		}
		if err != nil {
			return err
		}
		s = s[i+1:]
	}
	return nil
}

// Props returns the run properties, creating them when absent.
func (r *Run) Props() *RunProperties {
	if r.Properties == nil {
		r.Properties = &RunProperties{}
	}
	return r.Properties
}

// GetText returns the text content of a run
func (r *Run) GetText() string {
	if r.Break != nil {
		return r.Text + "\n"
	}
	return r.Text
}

// RunProperties is w:rPr. Only the formatting the renderer emits is modeled.
type RunProperties struct {
	Bold   *Empty `xml:"b"`
	Italic *Empty `xml:"i"`
	Color  *Color `xml:"color"`
}

// MarshalXML implements custom XML marshaling for RunProperties in schema order
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("rPr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if p.Bold != nil {
		if err := encodeChild(e, p.Bold, "b"); err != nil {
			return err
		}
	}
	if p.Italic != nil {
		if err := encodeChild(e, p.Italic, "i"); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if err := encodeChild(e, p.Color, "color"); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

type Text struct {
	Content string
}

// MarshalXML implements custom XML marshaling for Text, always preserving spaces
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{
		Name: wname("t"),
		Attr: []xml.Attr{{Name: xml.Name{Local: "xml:space"}, Value: "preserve"}},
	}
	return e.EncodeElement(t.Content, start)
}

// Break is w:br.
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

// MarshalXML implements xml.Marshaler to ensure Break is an empty w:br
func (b *Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("br")}
	if b.Type != "" {
		start.Attr = append(start.Attr, wattr("type", b.Type))
	}
	return e.EncodeElement(struct{}{}, start)
}

// Color is text color as six hex digits without a leading '#'
type Color struct {
	Val string `xml:"val,attr"`
}

func (c Color) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("color"), Attr: []xml.Attr{wattr("val", c.Val)}}
	return e.EncodeElement(struct{}{}, start)
}
