// Package remediation turns a site survey workbook into a remediation list document:
// a findings and remediations table grouped by floor followed by a short technical
// analysis.
package remediation

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/benjaminschreck/go-scorecard/pkg/docx"
	"github.com/benjaminschreck/go-scorecard/pkg/htmldocx"
	"github.com/benjaminschreck/go-scorecard/pkg/narrative"
	"github.com/benjaminschreck/go-scorecard/pkg/scorecard"
)

// Workbook column headers.
const (
	FindingColumn     = "Finding Details"
	RemediationColumn = "Remediation Detail"
	FailureColumn     = "Failure"
)

// minFindingLength filters out placeholder rows: shorter finding texts are ignored.
const minFindingLength = 10

// AnalysisHeading titles the narrative section.
const AnalysisHeading = "Technical Analysis"

// Finding is one workbook row with a finding. Floor is the sheet it came from.
type Finding struct {
	Floor       string
	Details     string
	Remediation string
	Failure     string
}

// Load reads the findings of the workbook at path.
func Load(path string) (_ []Finding, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return load(f)
}

// LoadReader reads the findings of a workbook from r.
func LoadReader(r io.Reader) (_ []Finding, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return load(f)
}

// load walks every sheet whose header row has a finding column, in sheet order.
// Sheets without one are not floor sheets and are skipped.
func load(f *excelize.File) ([]Finding, error) {
	var findings []Finding
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("unable to read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		columns := headerIndex(rows[0])
		if _, ok := columns[FindingColumn]; !ok {
			continue
		}
		for _, row := range rows[1:] {
			details := cell(row, columns, FindingColumn)
			if len([]rune(details)) <= minFindingLength {
				continue
			}
			findings = append(findings, Finding{
				Floor:       sheet,
				Details:     details,
				Remediation: cell(row, columns, RemediationColumn),
				Failure:     cell(row, columns, FailureColumn),
			})
		}
	}
	return findings, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return columns
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Summary counts findings per failure type, most frequent first. Ties keep the order
// in which the failure types first appear.
func Summary(findings []Finding) []narrative.Count {
	var counts []narrative.Count
	index := make(map[string]int)
	for _, f := range findings {
		if f.Failure == "" {
			continue
		}
		i, ok := index[f.Failure]
		if !ok {
			i = len(counts)
			index[f.Failure] = i
			counts = append(counts, narrative.Count{Failure: f.Failure})
		}
		counts[i].Count++
	}
	slices.SortStableFunc(counts, func(a, b narrative.Count) int { return cmp.Compare(b.Count, a.Count) })
	return counts
}

// Markup renders the findings table: one row per floor in first-appearance order,
// each cell holding the floor name and a bulleted list.
func Markup(findings []Finding) string {
	var floors []string
	byFloor := make(map[string][]Finding)
	for _, f := range findings {
		if _, ok := byFloor[f.Floor]; !ok {
			floors = append(floors, f.Floor)
		}
		byFloor[f.Floor] = append(byFloor[f.Floor], f)
	}

	rows := make([][2]string, 0, len(floors))
	for _, floor := range floors {
		var details, remediations strings.Builder
		for _, f := range byFloor[floor] {
			details.WriteString("<li>" + html.EscapeString(f.Details) + "</li>")
			remediations.WriteString("<li>" + html.EscapeString(f.Remediation) + "</li>")
		}
		name := html.EscapeString(floor)
		rows = append(rows, [2]string{
			name + "<ul>" + details.String() + "</ul>",
			name + "<ul>" + remediations.String() + "</ul>",
		})
	}
	return scorecard.FindingsList(50, 50, rows)
}

// Generator builds remediation documents.
type Generator struct {
	narrator narrative.Narrator
	log      *zap.Logger
}

// NewGenerator returns a generator writing its analysis with narrator. A nil logger
// disables logging.
func NewGenerator(narrator narrative.Narrator, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{narrator: narrator, log: log.Named("remediation")}
}

// Generate returns a new document holding the findings table, a blank paragraph, the
// analysis heading and the analysis paragraph.
func (g *Generator) Generate(ctx context.Context, findings []Finding) (*docx.Document, error) {
	summary := Summary(findings)
	analysis, err := g.narrator.Describe(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("unable to describe findings: %w", err)
	}

	table, err := htmldocx.Render(Markup(findings))
	if err != nil {
		return nil, fmt.Errorf("unable to render findings: %w", err)
	}
	text, err := htmldocx.Render(narrative.Paragraph(analysis))
	if err != nil {
		return nil, fmt.Errorf("unable to render analysis: %w", err)
	}

	doc := docx.New()
	if err := doc.Append(table...); err != nil {
		return nil, err
	}
	if err := doc.Append(docx.Paragraph(""), docx.Heading(AnalysisHeading, 1)); err != nil {
		return nil, err
	}
	if err := doc.Append(text...); err != nil {
		return nil, err
	}
	g.log.Info("Remediation list generated", zap.Int("findings", len(findings)),
		zap.Int("failure types", len(summary)))
	return doc, nil
}
