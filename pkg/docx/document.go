package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

// Block is one child of the document body. Blocks read from the package keep their
// original bytes; blocks inserted later are marshaled from their element.
type Block struct {
	name string
	raw  []byte
	elem wml.BodyElement
}

// Name returns the local element name of the block ("p", "tbl", "sectPr", ...).
func (b Block) Name() string { return b.name }

// Paragraph returns the block as a paragraph. Paragraphs read from the package are
// decoded for their text only.
func (b Block) Paragraph() (*wml.Paragraph, bool) {
	p, ok := b.elem.(*wml.Paragraph)
	return p, ok
}

// Table returns the block as a table when it was inserted as one.
func (b Block) Table() (*wml.Table, bool) {
	t, ok := b.elem.(*wml.Table)
	return t, ok
}

// Document is a DOCX package with its body split into blocks.
//
// A Document is not safe for concurrent use.
type Document struct {
	parts  []part
	prolog []byte
	blocks []Block
	epilog []byte
}

func blockOf(elem wml.BodyElement) (Block, error) {
	switch el := elem.(type) {
	case *wml.Paragraph:
		return Block{name: "p", elem: el}, nil
	case *wml.Table:
		return Block{name: "tbl", elem: el}, nil
	default:
		return Block{}, fmt.Errorf("unsupported body element %T", elem)
	}
}

// Len returns the number of body blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Block returns the block at index i.
func (d *Document) Block(i int) Block { return d.blocks[i] }

// ParagraphText returns the text of the block at i if it is a paragraph.
func (d *Document) ParagraphText(i int) (string, bool) {
	if i < 0 || i >= len(d.blocks) {
		return "", false
	}
	p, ok := d.blocks[i].Paragraph()
	if !ok {
		return "", false
	}
	return p.GetText(), true
}

// Paragraphs returns the body paragraphs in order. Paragraphs inside tables are not
// included.
func (d *Document) Paragraphs() []*wml.Paragraph {
	var out []*wml.Paragraph
	for _, b := range d.blocks {
		if p, ok := b.Paragraph(); ok {
			out = append(out, p)
		}
	}
	return out
}

// Insert places elems at index i, in order, shifting later blocks. Either all
// elements are inserted or none.
func (d *Document) Insert(i int, elems ...wml.BodyElement) error {
	if i < 0 || i > len(d.blocks) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(d.blocks), ErrIndex)
	}
	add := make([]Block, len(elems))
	for n, el := range elems {
		b, err := blockOf(el)
		if err != nil {
			return err
		}
		add[n] = b
	}
	blocks := make([]Block, 0, len(d.blocks)+len(add))
	blocks = append(blocks, d.blocks[:i]...)
	blocks = append(blocks, add...)
	d.blocks = append(blocks, d.blocks[i:]...)
	return nil
}

// Remove deletes the block at index i.
func (d *Document) Remove(i int) error {
	if i < 0 || i >= len(d.blocks) {
		return fmt.Errorf("remove at %d of %d: %w", i, len(d.blocks), ErrIndex)
	}
	d.blocks = append(d.blocks[:i:i], d.blocks[i+1:]...)
	return nil
}

// Append adds elems at the end of the body, ahead of the final section properties.
func (d *Document) Append(elems ...wml.BodyElement) error {
	at := len(d.blocks)
	if at > 0 && d.blocks[at-1].name == "sectPr" {
		at--
	}
	return d.Insert(at, elems...)
}

// Text returns the text of all body paragraphs joined by newlines.
func (d *Document) Text() string {
	paras := d.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.GetText()
	}
	return strings.Join(texts, "\n")
}

// parseBody splits document.xml into the bytes before the body content, the body
// blocks and the bytes after them.
func (d *Document) parseBody(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	depth := 0
	inBody := false
	var blocks []Block

	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !inBody {
				depth++
				if depth == 2 && t.Name.Local == "body" {
					inBody = true
					d.prolog = data[:dec.InputOffset()]
					if bytes.HasSuffix(d.prolog, []byte("/>")) {
						// <w:body/>: reopen it so blocks can be written inside
						tag := string(data[off:dec.InputOffset()])
						d.prolog = append(append([]byte{}, d.prolog[:len(d.prolog)-2]...), '>')
						d.epilog = []byte("</" + strings.TrimSpace(tag[1:len(tag)-2]) + ">")
					}
				}
				continue
			}

			b := Block{name: t.Name.Local}
			if t.Name.Local == "p" {
				var p wml.Paragraph
				if err := dec.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.elem = &p
			} else if err := dec.Skip(); err != nil {
				return err
			}
			b.raw = data[off:dec.InputOffset()]
			blocks = append(blocks, b)

		case xml.EndElement:
			if inBody && t.Name.Local == "body" {
				d.epilog = append(d.epilog, data[off:]...)
				d.blocks = blocks
				return nil
			}
			depth--
		}
	}
	return errors.New("document has no body")
}

// documentXML reassembles document.xml from the prolog, blocks and epilog.
func (d *Document) documentXML() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(d.prolog)
	enc := xml.NewEncoder(&buf)
	for _, b := range d.blocks {
		if b.raw != nil {
			if err := enc.Flush(); err != nil {
				return nil, err
			}
			buf.Write(b.raw)
			continue
		}
		if err := enc.Encode(b.elem); err != nil {
			return nil, fmt.Errorf("marshal %s: %w", b.name, err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.Write(d.epilog)
	return buf.Bytes(), nil
}
