// Package xml provides the WordprocessingML structures used to build and inspect
// DOCX body content.
//
// DOCX files are ZIP archives whose main part, word/document.xml, holds the body as
// an ordered list of block elements. This package models the blocks the renderer
// produces and the parts of existing blocks that need to be read back.
//
// # Structure Organization
//
//   - types.go: BodyElement and the small value elements shared by the others
//   - paragraph.go: Paragraph, ParagraphProperties, Indentation, Alignment
//   - run.go: Run, RunProperties, Color, Break
//   - table.go: Table, TableRow, TableCell and their properties
//
// # Marshaling
//
// Every element marshals with an explicit "w:" prefix. The prefix is declared on the
// root w:document element of the package the content is written into, so fragments
// produced here are only meaningful inside such a document.
//
// Unmarshaling is tolerant: unknown children are skipped, and paragraphs flatten runs
// nested in hyperlinks, smart tags and tracked insertions so that GetText returns the
// text a reader sees.
//
// Example of building a paragraph:
//
//	p := &xml.Paragraph{}
//	p.AddRun("Total: ")
//	p.AddRun("42").Properties = &xml.RunProperties{Bold: &xml.Empty{}}
package xml
