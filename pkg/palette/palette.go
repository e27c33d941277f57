// Package palette holds the colors and page geometry shared by the report markup
// builders and the DOCX renderer.
package palette

// Report colors in CSS hex notation.
const (
	Red    = "#ffb2b5"
	Green  = "#b0e396"
	Yellow = "#f2d268"
	White  = "#ffffff"
	Border = "#c1c6cc"
)

// DefaultBorder is the cell border color used when a table declares none. It is in
// WordprocessingML notation (no leading '#').
const DefaultBorder = "4A5568"

// Geometry in twips (1/1440 inch) unless stated otherwise.
const (
	// TotalWidthInches is the page width column percentages are resolved against.
	TotalWidthInches = 6
	// CellPadding is applied to every side of every cell.
	CellPadding = 120
	// ListIndent is the left indent and hanging indent of list item paragraphs.
	ListIndent = 360
	// FullWidthPct is 100% in fiftieths of a percent.
	FullWidthPct = 5000
)

// Bullet prefixes list items rendered inside table cells.
const Bullet = "• "
