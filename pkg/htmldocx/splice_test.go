package htmldocx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benjaminschreck/go-scorecard/pkg/docx"
	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

func newBody(t *testing.T, texts ...string) *docx.Document {
	t.Helper()
	doc := docx.New()
	for _, text := range texts {
		p := &wml.Paragraph{}
		p.AddRun(text)
		require.NoError(t, doc.Append(p))
	}
	return doc
}

// bodyTexts describes each block: paragraph text, "<tbl>" for inserted tables and
// "<sectPr>" for anything else.
func bodyTexts(doc *docx.Document) []string {
	out := make([]string, doc.Len())
	for i := range out {
		if text, ok := doc.ParagraphText(i); ok {
			out[i] = text
			continue
		}
		if _, ok := doc.Block(i).Table(); ok {
			out[i] = "<tbl>"
			continue
		}
		out[i] = "<" + doc.Block(i).Name() + ">"
	}
	return out
}

const oneCellTable = `<table><tr><td>cell</td></tr></table>`

func TestSplice(t *testing.T) {
	tests := []struct {
		name string
		body []string
		reps []Replacement
		want []string
	}{
		{
			name: "paragraph",
			body: []string{"Intro", "{{bp1}}", "End"},
			reps: []Replacement{{Name: "bp1", Markup: "<p>hello</p>"}},
			want: []string{"Intro", "hello", "End", "<sectPr>"},
		},
		{
			name: "table gets a trailing blank paragraph",
			body: []string{"Intro", "{{bp1}}", "End"},
			reps: []Replacement{{Name: "bp1", Markup: oneCellTable}},
			want: []string{"Intro", "<tbl>", "", "End", "<sectPr>"},
		},
		{
			name: "blank paragraph follows everything inserted",
			body: []string{"Intro", "{{bp1}}"},
			reps: []Replacement{{Name: "bp1", Markup: oneCellTable + "<p>after</p>"}},
			want: []string{"Intro", "<tbl>", "after", "", "<sectPr>"},
		},
		{
			name: "unknown placeholder is left alone",
			body: []string{"{{other}}"},
			reps: []Replacement{{Name: "bp1", Markup: "<p>x</p>"}},
			want: []string{"{{other}}", "<sectPr>"},
		},
		{
			name: "empty markup removes the placeholder",
			body: []string{"a", "{{bp1}}", "b"},
			reps: []Replacement{{Name: "bp1", Markup: ""}},
			want: []string{"a", "b", "<sectPr>"},
		},
		{
			name: "whole paragraph is replaced",
			body: []string{"See {{bp1}} below"},
			reps: []Replacement{{Name: "bp1", Markup: "<p>x</p>"}},
			want: []string{"x", "<sectPr>"},
		},
		{
			name: "every occurrence is replaced",
			body: []string{"{{bp1}}", "mid", "{{bp1}}"},
			reps: []Replacement{{Name: "bp1", Markup: "<p>one</p><p>two</p>"}},
			want: []string{"one", "two", "mid", "one", "two", "<sectPr>"},
		},
		{
			name: "first matching replacement wins",
			body: []string{"{{bp1}} {{bp2}}"},
			reps: []Replacement{{Name: "bp2", Markup: "<p>two</p>"}, {Name: "bp1", Markup: "<p>one</p>"}},
			want: []string{"two", "<sectPr>"},
		},
		{
			name: "inserted content is not rescanned",
			body: []string{"{{bp1}}", "{{bp2}}"},
			reps: []Replacement{{Name: "bp1", Markup: "<p>{{bp2}}</p>"}, {Name: "bp2", Markup: "<p>done</p>"}},
			want: []string{"{{bp2}}", "done", "<sectPr>"},
		},
		{
			name: "no replacements",
			body: []string{"{{bp1}}"},
			want: []string{"{{bp1}}", "<sectPr>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newBody(t, tt.body...)
			require.NoError(t, Splice(doc, tt.reps))
			assert.Equal(t, tt.want, bodyTexts(doc))
		})
	}
}

func TestSpliceStopsAtFirstFailure(t *testing.T) {
	doc := newBody(t, "Intro", "{{bp1}}", "{{bp2}}", "{{bp1}}")
	reps := []Replacement{
		{Name: "bp1", Markup: "<p>one</p>"},
		{Name: "bp2", Markup: `<table><tr><td style="background-color:green">x</td></tr></table>`},
	}

	err := Splice(doc, reps)
	require.Error(t, err)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "bp2", renderErr.Placeholder)
	assert.Equal(t, 2, renderErr.Index)
	assert.ErrorIs(t, err, ErrColor)
	assert.Contains(t, err.Error(), "placeholder 'bp2'")

	assert.Equal(t, []string{"Intro", "one", "{{bp2}}", "{{bp1}}", "<sectPr>"}, bodyTexts(doc))
}

func TestSpliceSurvivesSave(t *testing.T) {
	doc := newBody(t, "Intro", "{{bp1}}")
	require.NoError(t, Splice(doc, []Replacement{{Name: "bp1", Markup: oneCellTable + "<p>after</p>"}}))

	data, err := doc.Bytes()
	require.NoError(t, err)
	reopened, err := docx.OpenBytes(data)
	require.NoError(t, err)

	require.Equal(t, 5, reopened.Len())
	assert.Equal(t, "tbl", reopened.Block(1).Name())
	text, ok := reopened.ParagraphText(2)
	assert.True(t, ok)
	assert.Equal(t, "after", text)
	text, ok = reopened.ParagraphText(3)
	assert.True(t, ok)
	assert.Equal(t, "", text)
}

func TestFromMap(t *testing.T) {
	reps := FromMap(map[string]string{"b": "<p>b</p>", "a": "<p>a</p>"})
	assert.Equal(t, []Replacement{{Name: "a", Markup: "<p>a</p>"}, {Name: "b", Markup: "<p>b</p>"}}, reps)
	assert.Equal(t, "{{a}}", Token("a"))
}

func TestOrchestrator(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := NewOrchestrator(zap.New(core))

	doc := newBody(t, "{{bp1}}", "{{bp1}}")
	require.NoError(t, o.Replace(doc, []Replacement{{Name: "bp1", Markup: "<p>x</p>"}}))

	assert.Equal(t, 2, logs.FilterMessage("Placeholder replaced").Len())
	summary := logs.FilterMessage("Placeholders replaced").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(2), summary[0].ContextMap()["replaced"])

	bad := newBody(t, "{{bp1}}")
	assert.False(t, o.Update(bad, []Replacement{{Name: "bp1", Markup: `<p style="color:x">x</p>`}}))
	assert.Equal(t, 1, logs.FilterMessage("Placeholder replacement failed").Len())

	assert.True(t, NewOrchestrator(nil).Update(newBody(t, "plain"), nil))
}
