package docx

import (
	"archive/zip"
	"strconv"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

const (
	blankContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

	blankRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	blankDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

	blankDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:sectPr>
      <w:pgSz w:w="12240" w:h="15840"/>
      <w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>
    </w:sectPr>
  </w:body>
</w:document>`

	blankStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
    <w:rPr><w:sz w:val="22"/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:name w:val="heading 1"/>
    <w:basedOn w:val="Normal"/>
    <w:next w:val="Normal"/>
    <w:pPr><w:keepNext/><w:spacing w:before="480" w:after="0"/><w:outlineLvl w:val="0"/></w:pPr>
    <w:rPr><w:b/><w:color w:val="365F91"/><w:sz w:val="28"/></w:rPr>
  </w:style>
</w:styles>`
)

// New returns an empty document with a Normal and a Heading1 paragraph style.
func New() *Document {
	doc := &Document{
		parts: []part{
			{name: "[Content_Types].xml", method: zip.Deflate, data: []byte(blankContentTypes)},
			{name: "_rels/.rels", method: zip.Deflate, data: []byte(blankRels)},
			{name: DocumentPart, method: zip.Deflate, data: []byte(blankDocument)},
			{name: "word/_rels/document.xml.rels", method: zip.Deflate, data: []byte(blankDocumentRels)},
			{name: "word/styles.xml", method: zip.Deflate, data: []byte(blankStyles)},
		},
	}
	if err := doc.parseBody([]byte(blankDocument)); err != nil {
		panic("docx: blank document does not parse: " + err.Error())
	}
	return doc
}

// Heading returns a paragraph using the "Heading<level>" style.
func Heading(text string, level int) *wml.Paragraph {
	p := &wml.Paragraph{}
	p.Props().Style = &wml.Style{Val: "Heading" + strconv.Itoa(level)}
	p.AddRun(text)
	return p
}

// Paragraph returns a plain paragraph. Empty text gives a paragraph without runs.
func Paragraph(text string) *wml.Paragraph {
	p := &wml.Paragraph{}
	if text != "" {
		p.AddRun(text)
	}
	return p
}
