package htmldocx

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
	"github.com/benjaminschreck/go-scorecard/pkg/palette"
)

const (
	emuPerInch   = 914400
	emuPerTwip   = 635
	twipsPerInch = 1440
)

// ColumnWidth is a declared column width. Auto columns keep the default share.
type ColumnWidth struct {
	Percent float64
	Auto    bool
}

// Percent returns a fixed column width.
func Percent(p float64) ColumnWidth { return ColumnWidth{Percent: p} }

// Twips converts the percentage of the fixed total width to twips.
func (w ColumnWidth) Twips() int {
	emu := int64(w.Percent / 100 * palette.TotalWidthInches * emuPerInch)
	return int(math.Round(float64(emu) / emuPerTwip))
}

// RenderTable converts a table node into a structural table. A table without rows
// or cells renders to nil.
//
// Cells are written in mirrored column order: the last markup cell of a row lands in
// the first structural column. Column widths follow the same mirroring.
func RenderTable(n *Node) (*wml.Table, error) {
	rows := n.FindAll(KindRow)
	cells := make([][]*Node, len(rows))
	cols := 0
	for i, row := range rows {
		cells[i] = row.FindAll(KindCell)
		cols = max(cols, len(cells[i]))
	}
	if len(rows) == 0 || cols == 0 {
		return nil, nil
	}

	widths, err := columnWidths(n)
	if err != nil {
		return nil, err
	}

	tbl := wml.NewTable(len(rows), cols)
	tbl.Properties.Width = &wml.Width{Val: palette.FullWidthPct, Type: "pct"}
	tbl.Properties.CellMargins = &wml.TableCellMargins{
		Top:    &wml.Width{Val: palette.CellPadding, Type: "dxa"},
		Left:   &wml.Width{Val: palette.CellPadding, Type: "dxa"},
		Bottom: &wml.Width{Val: palette.CellPadding, Type: "dxa"},
		Right:  &wml.Width{Val: palette.CellPadding, Type: "dxa"},
	}
	tbl.Properties.Look = &wml.TableLook{Val: "04A0"}

	share := palette.TotalWidthInches * twipsPerInch / cols
	for c := range tbl.Grid.Columns {
		tbl.Grid.Columns[c].Width = share
	}
	for r := range tbl.Rows {
		for c := range tbl.Rows[r].Cells {
			tbl.Rows[r].Cells[c].Props().Width = &wml.Width{Val: share, Type: "dxa"}
		}
	}

	border := borderColor(n.Style)
	for i, row := range rows {
		rowBackground := row.Style["background-color"]
		for j, cell := range cells[i] {
			if err := styleCell(tbl.Cell(i, cols-1-j), cell, border, rowBackground); err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", i, j, err)
			}
		}
	}

	ApplyColumnWidths(tbl, widths)
	return tbl, nil
}

func styleCell(tc *wml.TableCell, cell *Node, border, rowBackground string) error {
	renderCellContent(tc, cell)

	styles := cell.Style
	if styles.Has("border", "border-top", "border-left", "border-bottom", "border-right") {
		edge := func() *wml.BorderProperties {
			return &wml.BorderProperties{Val: "single", Sz: "4", Space: "0", Color: border}
		}
		tc.Props().Borders = &wml.TableCellBorders{Top: edge(), Left: edge(), Bottom: edge(), Right: edge()}
	}

	background := styles["background-color"]
	if background == "" {
		background = rowBackground
	}
	if background != "" {
		fill, err := hexColor(background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		tc.Props().Shading = &wml.Shading{Val: "clear", Color: "auto", Fill: fill}
	}

	first := &tc.Paragraphs[0]
	switch styles["text-align"] {
	case "center", "right":
		first.Props().Alignment = &wml.Alignment{Val: styles["text-align"]}
	}

	if v := styles["color"]; v != "" {
		color, err := hexColor(v)
		if err != nil {
			return fmt.Errorf("font color: %w", err)
		}
		for r := range first.Runs {
			first.Runs[r].Props().Color = &wml.Color{Val: color}
		}
	}
	return nil
}

// columnWidths reads the col widths of the first colgroup in declared order.
func columnWidths(n *Node) ([]ColumnWidth, error) {
	group := n.Find(KindColGroup)
	if group == nil {
		return nil, nil
	}
	var widths []ColumnWidth
	for _, col := range group.FindAll(KindCol) {
		w, err := parseWidth(col.Width)
		if err != nil {
			return nil, err
		}
		widths = append(widths, w)
	}
	return widths, nil
}

// parseWidth accepts "25%", "25 %", "25" or an empty value (auto).
func parseWidth(v string) (ColumnWidth, error) {
	if strings.TrimSpace(v) == "" {
		return ColumnWidth{Auto: true}, nil
	}
	var number string
	var percent bool
	l := css.NewLexer(parse.NewInputString(v))
	for {
		tt, data := l.Next()
		switch {
		case tt == css.ErrorToken:
			p, err := strconv.ParseFloat(number, 64)
			if err != nil {
				return ColumnWidth{}, fmt.Errorf("%w: %q", ErrWidth, v)
			}
			return Percent(p), nil
		case tt == css.WhitespaceToken:
		case tt == css.PercentageToken && number == "":
			number = string(data[:len(data)-1])
			percent = true
		case tt == css.DelimToken && string(data) == "%" && number != "" && !percent:
			percent = true
		case tt == css.NumberToken && number == "":
			number = string(data)
		default:
			return ColumnWidth{}, fmt.Errorf("%w: %q", ErrWidth, v)
		}
	}
}

// ApplyColumnWidths sets the width of every cell in the mirrored column of each
// declared width, and of the matching grid column. Widths beyond the column count are
// ignored. Applying the same widths again leaves the table unchanged.
func ApplyColumnWidths(tbl *wml.Table, widths []ColumnWidth) {
	cols := tbl.ColumnCount()
	for i, w := range widths {
		col := cols - 1 - i
		if w.Auto || col < 0 {
			continue
		}
		twips := w.Twips()
		tbl.Grid.Columns[col].Width = twips
		for r := range tbl.Rows {
			if tc := tbl.Cell(r, col); tc != nil {
				tc.Props().Width = &wml.Width{Val: twips, Type: "dxa"}
			}
		}
	}
}
