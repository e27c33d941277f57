package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

const testDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml">
  <w:body>
    <w:p w14:paraId="1A2B3C4D"><w:r><w:t>Intro</w:t></w:r></w:p>
    <w:p><w:r><w:t>{{bp1}}</w:t></w:r></w:p>
    <w:tbl><w:tblPr><w:tblStyle w:val="Grid"/></w:tblPr><w:tr><w:tc><w:p><w:r><w:t>inside</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>
  </w:body>
</w:document>`

func buildPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", DocumentPart, "word/styles.xml"} {
		content, ok := parts[name]
		if !ok {
			continue
		}
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func openTest(t *testing.T) *Document {
	t.Helper()
	doc, err := OpenBytes(buildPackage(t, map[string]string{
		DocumentPart:      testDocument,
		"word/styles.xml": `<w:styles/>`,
	}))
	require.NoError(t, err)
	return doc
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		content func(t *testing.T) []byte
		wantErr error
	}{
		{
			name: "valid package",
			content: func(t *testing.T) []byte {
				return buildPackage(t, map[string]string{DocumentPart: testDocument})
			},
		},
		{
			name:    "not a zip",
			content: func(*testing.T) []byte { return []byte("not a zip file") },
			wantErr: ErrNotDocx,
		},
		{
			name: "zip without document part",
			content: func(t *testing.T) []byte {
				return buildPackage(t, map[string]string{"_rels/.rels": "<Relationships/>"})
			},
			wantErr: ErrNotDocx,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := OpenBytes(tt.content(t))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				var de *DocumentError
				assert.True(t, errors.As(err, &de))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, doc)
		})
	}
}

func TestBodyBlocks(t *testing.T) {
	doc := openTest(t)

	require.Equal(t, 4, doc.Len())
	var names []string
	for i := 0; i < doc.Len(); i++ {
		names = append(names, doc.Block(i).Name())
	}
	assert.Equal(t, []string{"p", "p", "tbl", "sectPr"}, names)

	text, ok := doc.ParagraphText(1)
	assert.True(t, ok)
	assert.Equal(t, "{{bp1}}", text)

	_, ok = doc.ParagraphText(2)
	assert.False(t, ok, "tables are not paragraphs")
	_, ok = doc.ParagraphText(10)
	assert.False(t, ok)

	assert.Len(t, doc.Paragraphs(), 2, "paragraphs inside tables are not body paragraphs")
	assert.Equal(t, "Intro\n{{bp1}}", doc.Text())
}

func TestInsertRemove(t *testing.T) {
	doc := openTest(t)

	p := &wml.Paragraph{}
	p.AddRun("hello")
	tbl := wml.NewTable(1, 1)
	tbl.Cell(0, 0).Paragraphs[0].AddRun("cell")

	require.NoError(t, doc.Insert(1, p, tbl))
	require.NoError(t, doc.Remove(3))
	assert.Equal(t, 5, doc.Len())

	text, _ := doc.ParagraphText(1)
	assert.Equal(t, "hello", text)
	got, ok := doc.Block(2).Table()
	require.True(t, ok)
	assert.Same(t, tbl, got)

	assert.ErrorIs(t, doc.Insert(-1, p), ErrIndex)
	assert.ErrorIs(t, doc.Insert(doc.Len()+1, p), ErrIndex)
	assert.ErrorIs(t, doc.Remove(doc.Len()), ErrIndex)
	assert.Equal(t, 5, doc.Len(), "failed operations leave the body alone")
}

func TestSavePreservesUntouchedContent(t *testing.T) {
	doc := openTest(t)

	p := &wml.Paragraph{}
	p.AddRun("a & b")
	require.NoError(t, doc.Insert(1, p))
	require.NoError(t, doc.Remove(2))

	out, err := doc.Bytes()
	require.NoError(t, err)

	back, err := OpenBytes(out)
	require.NoError(t, err)
	assert.Equal(t, "Intro\na & b", back.Text())

	main, ok := back.Part(DocumentPart)
	require.True(t, ok)
	xml := string(main)
	assert.Contains(t, xml, `<w:p w14:paraId="1A2B3C4D"><w:r><w:t>Intro</w:t></w:r></w:p>`)
	assert.Contains(t, xml, `<w:tblStyle w:val="Grid"/>`)
	assert.Contains(t, xml, `a &amp; b`)
	assert.NotContains(t, xml, "{{bp1}}")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(xml), "</w:body>\n</w:document>"))

	styles, ok := back.Part("word/styles.xml")
	require.True(t, ok)
	assert.Equal(t, "<w:styles/>", string(styles))
	assert.Equal(t, []string{DocumentPart, "word/styles.xml"}, back.PartNames())
}

func TestAppendKeepsSectionLast(t *testing.T) {
	doc := openTest(t)
	require.NoError(t, doc.Append(Heading("Technical Analysis", 1)))

	require.Equal(t, 5, doc.Len())
	assert.Equal(t, "p", doc.Block(3).Name())
	assert.Equal(t, "sectPr", doc.Block(4).Name())

	p, ok := doc.Block(3).Paragraph()
	require.True(t, ok)
	assert.Equal(t, "Heading1", p.Properties.Style.Val)
}

func TestSelfClosingBody(t *testing.T) {
	src := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`
	doc, err := OpenBytes(buildPackage(t, map[string]string{DocumentPart: src}))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())

	p := &wml.Paragraph{}
	p.AddRun("added")
	require.NoError(t, doc.Append(p))

	out, err := doc.Bytes()
	require.NoError(t, err)
	back, err := OpenBytes(out)
	require.NoError(t, err)
	assert.Equal(t, "added", back.Text())
}

func TestNew(t *testing.T) {
	doc := New()
	assert.Equal(t, 1, doc.Len(), "blank body holds only section properties")

	require.NoError(t, doc.Append(Heading("Title", 1)))
	out, err := doc.Bytes()
	require.NoError(t, err)

	back, err := OpenBytes(out)
	require.NoError(t, err)
	assert.Equal(t, "Title", back.Text())
	_, ok := back.Part("word/styles.xml")
	assert.True(t, ok)
}
