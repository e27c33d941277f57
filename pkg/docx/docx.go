// Package docx opens, edits and writes DOCX packages at the level of body blocks.
//
// Only word/document.xml is interpreted. Every other part is copied through
// unchanged, and body blocks that are not touched keep their original bytes.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// DocumentPart is the name of the main document part.
const DocumentPart = "word/document.xml"

type part struct {
	name   string
	method uint16
	data   []byte
}

// Open reads a DOCX package from r.
func Open(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewDocumentError("open", "", fmt.Errorf("%w: %w", ErrNotDocx, err))
	}

	doc := &Document{}
	var main []byte
	for _, file := range zr.File {
		data, err := readPart(file)
		if err != nil {
			return nil, NewDocumentError("read", file.Name, err)
		}
		if file.Name == DocumentPart {
			main = data
		}
		doc.parts = append(doc.parts, part{name: file.Name, method: file.Method, data: data})
	}
	if main == nil {
		return nil, NewDocumentError("open", DocumentPart, fmt.Errorf("%w: missing %s", ErrNotDocx, DocumentPart))
	}

	if err := doc.parseBody(main); err != nil {
		return nil, NewDocumentError("parse", DocumentPart, err)
	}
	return doc, nil
}

// OpenBytes reads a DOCX package held in memory. The content is sniffed as a zip
// container first so obviously wrong uploads fail with ErrNotDocx.
func OpenBytes(b []byte) (*Document, error) {
	if !filetype.Is(b, "zip") {
		return nil, NewDocumentError("open", "", ErrNotDocx)
	}
	return Open(bytes.NewReader(b), int64(len(b)))
}

// OpenFile reads a DOCX package from path.
func OpenFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}
	doc, err := OpenBytes(content)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return doc, nil
}

func readPart(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Save writes the package to w, replacing word/document.xml with the current body.
func (d *Document) Save(w io.Writer) error {
	main, err := d.documentXML()
	if err != nil {
		return NewDocumentError("marshal", DocumentPart, err)
	}

	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		data := p.data
		if p.name == DocumentPart {
			data = main
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: p.method})
		if err != nil {
			return NewDocumentError("write", p.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return NewDocumentError("write", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return NewDocumentError("write", "", err)
	}
	return nil
}

// Bytes returns the serialized package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile writes the package to path.
func (d *Document) SaveFile(path string) error {
	b, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return NewDocumentError("write", path, err)
	}
	return nil
}

// PartNames lists the package parts in archive order.
func (d *Document) PartNames() []string {
	names := make([]string, len(d.parts))
	for i, p := range d.parts {
		names[i] = p.name
	}
	return names
}

// Part returns the raw content of a package part.
func (d *Document) Part(name string) ([]byte, bool) {
	for _, p := range d.parts {
		if p.name == name {
			return p.data, true
		}
	}
	return nil, false
}
