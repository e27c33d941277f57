package xml

import (
	"encoding/xml"
	"strings"
)

// Table is w:tbl.
type Table struct {
	Properties *TableProperties `xml:"tblPr"`
	Grid       *TableGrid       `xml:"tblGrid"`
	Rows       []TableRow       `xml:"tr"`
}

func (t Table) isBodyElement() {}

// NewTable allocates a rows x cols table. Every cell starts with one empty paragraph,
// which WordprocessingML requires.
func NewTable(rows, cols int) *Table {
	t := &Table{
		Properties: &TableProperties{},
		Grid:       &TableGrid{Columns: make([]GridColumn, cols)},
		Rows:       make([]TableRow, rows),
	}
	for i := range t.Rows {
		t.Rows[i].Cells = make([]TableCell, cols)
		for j := range t.Rows[i].Cells {
			t.Rows[i].Cells[j].Paragraphs = []Paragraph{{}}
		}
	}
	return t
}

// ColumnCount returns the number of grid columns.
func (t *Table) ColumnCount() int {
	if t.Grid == nil {
		return 0
	}
	return len(t.Grid.Columns)
}

// Cell returns the cell at row, col or nil when out of range.
func (t *Table) Cell(row, col int) *TableCell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row].Cells) {
		return nil
	}
	return &t.Rows[row].Cells[col]
}

func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tbl")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if t.Properties != nil {
		if err := encodeChild(e, t.Properties, "tblPr"); err != nil {
			return err
		}
	}

	if t.Grid != nil {
		if err := encodeChild(e, t.Grid, "tblGrid"); err != nil {
			return err
		}
	}

	for i := range t.Rows {
		if err := encodeChild(e, &t.Rows[i], "tr"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableProperties is w:tblPr.
type TableProperties struct {
	Style       *Style            `xml:"tblStyle"`
	Width       *Width            `xml:"tblW"`
	CellMargins *TableCellMargins `xml:"tblCellMar"`
	Look        *TableLook        `xml:"tblLook"`
}

func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tblPr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := encodeChild(e, p.Style, "tblStyle"); err != nil {
			return err
		}
	}
	if p.Width != nil {
		if err := encodeChild(e, p.Width, "tblW"); err != nil {
			return err
		}
	}
	if p.CellMargins != nil {
		if err := encodeChild(e, p.CellMargins, "tblCellMar"); err != nil {
			return err
		}
	}
	if p.Look != nil {
		if err := encodeChild(e, p.Look, "tblLook"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Width is a measurement such as tblW or tcW. Type is "dxa" (twips),
// "pct" (fiftieths of a percent) or "auto".
type Width struct {
	Val  int    `xml:"w,attr"`
	Type string `xml:"type,attr"`
}

func (w Width) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{wattrInt("w", w.Val), wattr("type", w.Type)}
	return e.EncodeElement(struct{}{}, start)
}

// TableCellMargins holds the default cell padding of a table.
type TableCellMargins struct {
	Top    *Width `xml:"top"`
	Left   *Width `xml:"left"`
	Bottom *Width `xml:"bottom"`
	Right  *Width `xml:"right"`
}

func (m TableCellMargins) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tblCellMar")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, side := range []struct {
		name string
		w    *Width
	}{{"top", m.Top}, {"left", m.Left}, {"bottom", m.Bottom}, {"right", m.Right}} {
		if side.w == nil {
			continue
		}
		if err := encodeChild(e, side.w, side.name); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

type TableLook struct {
	Val string `xml:"val,attr"`
}

func (t TableLook) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tblLook"), Attr: []xml.Attr{wattr("val", t.Val)}}
	return e.EncodeElement(struct{}{}, start)
}

// TableGrid lists column widths in twips.
type TableGrid struct {
	Columns []GridColumn `xml:"gridCol"`
}

func (g TableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tblGrid")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range g.Columns {
		if err := encodeChild(e, &g.Columns[i], "gridCol"); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

type GridColumn struct {
	Width int `xml:"w,attr"`
}

func (g GridColumn) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("gridCol"), Attr: []xml.Attr{wattrInt("w", g.Width)}}
	return e.EncodeElement(struct{}{}, start)
}

// TableRow is w:tr.
type TableRow struct {
	Cells []TableCell `xml:"tc"`
}

func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range r.Cells {
		if err := encodeChild(e, &r.Cells[i], "tc"); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell is w:tc. A cell must hold at least one paragraph.
type TableCell struct {
	Properties *TableCellProperties `xml:"tcPr"`
	Paragraphs []Paragraph          `xml:"p"`
}

// Props returns the cell properties, creating them when absent.
func (c *TableCell) Props() *TableCellProperties {
	if c.Properties == nil {
		c.Properties = &TableCellProperties{}
	}
	return c.Properties
}

// AddParagraph appends an empty paragraph to the cell and returns it.
func (c *TableCell) AddParagraph() *Paragraph {
	c.Paragraphs = append(c.Paragraphs, Paragraph{})
	return &c.Paragraphs[len(c.Paragraphs)-1]
}

func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tc")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Properties != nil {
		if err := encodeChild(e, c.Properties, "tcPr"); err != nil {
			return err
		}
	}

	paras := c.Paragraphs
	if len(paras) == 0 {
		// a cell must end with a paragraph
		paras = []Paragraph{{}}
	}
	for i := range paras {
		if err := encodeChild(e, &paras[i], "p"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text of all paragraphs in a cell joined by newlines
func (c *TableCell) GetText() string {
	texts := make([]string, len(c.Paragraphs))
	for i := range c.Paragraphs {
		texts[i] = c.Paragraphs[i].GetText()
	}
	return strings.Join(texts, "\n")
}

// TableCellProperties is w:tcPr.
type TableCellProperties struct {
	Width   *Width            `xml:"tcW"`
	Borders *TableCellBorders `xml:"tcBorders"`
	Shading *Shading          `xml:"shd"`
}

func (p TableCellProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tcPr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Width != nil {
		if err := encodeChild(e, p.Width, "tcW"); err != nil {
			return err
		}
	}
	if p.Borders != nil {
		if err := encodeChild(e, p.Borders, "tcBorders"); err != nil {
			return err
		}
	}
	if p.Shading != nil {
		if err := encodeChild(e, p.Shading, "shd"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Shading is w:shd; Fill is the background color.
type Shading struct {
	Val   string `xml:"val,attr,omitempty"`
	Color string `xml:"color,attr,omitempty"`
	Fill  string `xml:"fill,attr,omitempty"`
}

func (s Shading) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("shd")}
	if s.Val != "" {
		start.Attr = append(start.Attr, wattr("val", s.Val))
	}
	if s.Color != "" {
		start.Attr = append(start.Attr, wattr("color", s.Color))
	}
	if s.Fill != "" {
		start.Attr = append(start.Attr, wattr("fill", s.Fill))
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableCellBorders is w:tcBorders.
type TableCellBorders struct {
	Top    *BorderProperties `xml:"top"`
	Left   *BorderProperties `xml:"left"`
	Bottom *BorderProperties `xml:"bottom"`
	Right  *BorderProperties `xml:"right"`
}

func (b TableCellBorders) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: wname("tcBorders")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, edge := range []struct {
		name string
		b    *BorderProperties
	}{{"top", b.Top}, {"left", b.Left}, {"bottom", b.Bottom}, {"right", b.Right}} {
		if edge.b == nil {
			continue
		}
		if err := encodeChild(e, edge.b, edge.name); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// BorderProperties describes one border edge.
type BorderProperties struct {
	Val   string `xml:"val,attr,omitempty"`
	Sz    string `xml:"sz,attr,omitempty"`
	Space string `xml:"space,attr,omitempty"`
	Color string `xml:"color,attr,omitempty"`
}

func (b BorderProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	if b.Val != "" {
		start.Attr = append(start.Attr, wattr("val", b.Val))
	}
	if b.Sz != "" {
		start.Attr = append(start.Attr, wattr("sz", b.Sz))
	}
	if b.Space != "" {
		start.Attr = append(start.Attr, wattr("space", b.Space))
	}
	if b.Color != "" {
		start.Attr = append(start.Attr, wattr("color", b.Color))
	}
	return e.EncodeElement(struct{}{}, start)
}
