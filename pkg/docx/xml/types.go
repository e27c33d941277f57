package xml

import (
	"encoding/xml"
	"strconv"
)

// BodyElement is any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// Empty marks on/off properties such as w:b.
type Empty struct{}

func (Empty) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	return e.EncodeElement(struct{}{}, start)
}

// Style references a style by id.
type Style struct {
	Val string `xml:"val,attr"`
}

func (s Style) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	// The element name depends on the context (pStyle, tblStyle, etc.)
	// so we keep the provided name
	start.Attr = []xml.Attr{wattr("val", s.Val)}
	return e.EncodeElement(struct{}{}, start)
}

func wname(local string) xml.Name {
	return xml.Name{Local: "w:" + local}
}

func wattr(local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: "w:" + local}, Value: value}
}

func wattrInt(local string, value int) xml.Attr {
	return wattr(local, strconv.Itoa(value))
}

func encodeChild(e *xml.Encoder, v any, local string) error {
	return e.EncodeElement(v, xml.StartElement{Name: wname(local)})
}
