package scorecard

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/benjaminschreck/go-scorecard/pkg/htmldocx"
	"github.com/benjaminschreck/go-scorecard/pkg/palette"
)

// Placeholder suffixes of the per-section progress bar and findings table.
const (
	ProgressBarSuffix = "_progressbar"
	FindingsSuffix    = "_findings"
)

const (
	tableStyle = "padding:8px; width:100%; border-collapse:collapse; border:1px solid " + palette.Border + ";"
	barStyle   = "width:100%; border-collapse:collapse; margin-top:10px; border:1px solid " + palette.Border + ";"
)

func cellStyle(align string) string {
	return "border:1px solid " + palette.Border + "; padding:6px; text-align:" + align + ";"
}

// Sections builds the replacements for every category, in the order categories first
// appear in results. Each category yields its requirements table under the category
// name, a progress bar under "<category>_progressbar" and the findings table under
// "<category>_findings". The findings markup is empty when every rule passed.
func Sections(results []Result) []htmldocx.Replacement {
	var order []string
	byCategory := make(map[string][]Result)
	for _, r := range results {
		if _, ok := byCategory[r.Category]; !ok {
			order = append(order, r.Category)
		}
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	reps := make([]htmldocx.Replacement, 0, 3*len(order))
	for _, category := range order {
		group := byCategory[category]
		passing := 0
		for _, r := range group {
			if r.Meets {
				passing++
			}
		}

		findings := ""
		if passing != len(group) {
			findings = FindingsTable(group)
		}
		reps = append(reps,
			htmldocx.Replacement{Name: category, Markup: RequirementsTable(group)},
			htmldocx.Replacement{Name: category + ProgressBarSuffix, Markup: ProgressBar(passing, len(group))},
			htmldocx.Replacement{Name: category + FindingsSuffix, Markup: findings},
		)
	}
	return reps
}

// RequirementsTable lists every result with its answer and a green or red verdict
// cell. Rule text (question category and message) is rule-authored markup and is
// written as is; the form answer is escaped.
func RequirementsTable(results []Result) string {
	var sb strings.Builder
	sb.WriteString(`<table style="` + tableStyle + `">`)
	sb.WriteString(`<colgroup><col width="25%"><col width="50%"><col width="10%"><col width="15%"></colgroup>`)
	sb.WriteString(`<tr style="background-color:` + palette.White + `;">`)
	writeCell(&sb, "th", cellStyle("left"), "Category")
	writeCell(&sb, "th", cellStyle("left"), "Message")
	writeCell(&sb, "th", cellStyle("center"), "Answer")
	writeCell(&sb, "th", cellStyle("center"), "Meets<br>Requirement")
	sb.WriteString(`</tr>`)

	for _, r := range results {
		bg := palette.Red
		if r.Meets {
			bg = palette.Green
		}
		sb.WriteString(`<tr>`)
		writeCell(&sb, "td", cellStyle("left"), r.QuestionCategory)
		writeCell(&sb, "td", cellStyle("left"), r.Message)
		writeCell(&sb, "td", cellStyle("center"), html.EscapeString(r.Answer))
		writeCell(&sb, "td", cellStyle("center")+" background-color:"+bg+";", r.MeetsText())
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</table>`)
	return sb.String()
}

// FindingsTable lists the findings and recommendations of the failing results. Both
// come from the rules and may carry markup such as <br> or <b>.
func FindingsTable(results []Result) string {
	var sb strings.Builder
	writeFindingsHeader(&sb, 60, 40)
	for _, r := range results {
		if r.Meets {
			continue
		}
		writeFindingsRow(&sb, r.Findings, r.Recommendations)
	}
	sb.WriteString(`</table>`)
	return sb.String()
}

// ProgressBar renders the pass rate as a two column bar whose green column is as wide
// as the share of passing results. A full pass is a single green cell.
func ProgressBar(passing, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(passing) / float64(total) * 100
	}

	var sb strings.Builder
	if pct == 100 {
		sb.WriteString(`<table style="width:100%; border-collapse:collapse; margin-top:10px;"><tr>`)
		writeCell(&sb, "td", "width:100%; background-color:"+palette.Green+"; border:1px solid "+palette.Border+
			"; padding:4px; text-align:center;", "<b>100%</b>")
		sb.WriteString(`</tr></table>`)
		return sb.String()
	}

	done := fmt.Sprintf("%.0f", pct)
	rest := fmt.Sprintf("%.0f", 100-pct)
	sb.WriteString(`<table style="` + barStyle + `">`)
	sb.WriteString(`<colgroup><col width="` + done + `%"><col width="` + rest + `%"></colgroup><tr>`)
	writeCell(&sb, "td", "background-color:"+palette.Green+"; border:1px solid "+palette.Border+
		"; padding:4px; text-align:center;", "<b>"+done+"%</b>")
	writeCell(&sb, "td", "background-color:"+palette.White+"; border:1px solid "+palette.Border+"; padding:4px;", "")
	sb.WriteString(`</tr></table>`)
	return sb.String()
}

func writeFindingsHeader(sb *strings.Builder, first, second int) {
	sb.WriteString(`<table style="` + tableStyle + `">`)
	fmt.Fprintf(sb, `<colgroup><col width="%d%%"><col width="%d%%"></colgroup>`, first, second)
	sb.WriteString(`<tr style="background-color:` + palette.White + `;">`)
	writeCell(sb, "th", cellStyle("left"), "Finding(s)")
	writeCell(sb, "th", cellStyle("left"), "Recommendation(s)")
	sb.WriteString(`</tr>`)
}

func writeFindingsRow(sb *strings.Builder, findings, recommendations string) {
	sb.WriteString(`<tr>`)
	writeCell(sb, "td", cellStyle("left"), findings)
	writeCell(sb, "td", cellStyle("left"), recommendations)
	sb.WriteString(`</tr>`)
}

// writeCell writes content as is; callers escape text.
func writeCell(sb *strings.Builder, tag, style, content string) {
	sb.WriteString("<" + tag + ` style="` + style + `">` + content + "</" + tag + ">")
}

// FindingsList renders a two column findings table from pre-built cell markup, with
// the given column percentages. Cell contents are written as is.
func FindingsList(first, second int, rows [][2]string) string {
	var sb strings.Builder
	writeFindingsHeader(&sb, first, second)
	for _, row := range rows {
		writeFindingsRow(&sb, row[0], row[1])
	}
	sb.WriteString(`</table>`)
	return sb.String()
}
