package scorecard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/benjaminschreck/go-scorecard/pkg/docx"
	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

var errNoForm = errors.New("no such form")

type memoryStore struct {
	rules []Rule
	forms map[int64]Form
}

func (s *memoryStore) Rules(context.Context) ([]Rule, error) { return s.rules, nil }

func (s *memoryStore) Form(_ context.Context, id int64) (Form, error) {
	form, ok := s.forms[id]
	if !ok {
		return nil, errNoForm
	}
	return form, nil
}

func templateBytes(t *testing.T, texts ...string) []byte {
	t.Helper()
	doc := docx.New()
	for _, text := range texts {
		p := &wml.Paragraph{}
		p.AddRun(text)
		require.NoError(t, doc.Append(p))
	}
	data, err := doc.Bytes()
	require.NoError(t, err)
	return data
}

func testStore() *memoryStore {
	return &memoryStore{
		rules: []Rule{
			{No: 1, ID: "q1", Section: "bp1", Question: "Coverage ok?", OnYes: Pass, OnNo: Fail,
				Finding: "Weak coverage", Recommendation: "Add access points"},
			{No: 2, ID: "q2", Section: "bp1", Question: "Roaming ok?", OnYes: Pass, OnNo: Fail},
			{No: 3, ID: "q3", Section: "bp2", Question: "WPA3?", OnYes: Pass, OnNo: Fail},
		},
		forms: map[int64]Form{
			7: {"q1": "no", "q2": "yes", "q3": "yes"},
		},
	}
}

func TestBuild(t *testing.T) {
	b := NewBuilder(testStore(), zaptest.NewLogger(t))
	template := templateBytes(t, "Scorecard", "{{bp1}}", "{{bp1_progressbar}}", "{{bp1_findings}}",
		"{{bp2}}", "{{bp2_progressbar}}", "{{bp2_findings}}", "{{bp3}}")

	out, err := b.Build(context.Background(), template, 7)
	require.NoError(t, err)

	doc, err := docx.OpenBytes(out)
	require.NoError(t, err)

	var names []string
	for i := 0; i < doc.Len(); i++ {
		names = append(names, doc.Block(i).Name())
	}
	// bp1: table, progress bar, findings; bp2: table, progress bar, no findings.
	assert.Equal(t, []string{"p",
		"tbl", "p", "tbl", "p", "tbl", "p",
		"tbl", "p", "tbl", "p",
		"p", "sectPr"}, names)

	text := doc.Text()
	assert.NotContains(t, text, "{{bp1")
	assert.NotContains(t, text, "{{bp2")
	assert.Contains(t, text, "{{bp3}}")
}

func TestBuildErrors(t *testing.T) {
	b := NewBuilder(testStore(), nil)
	template := templateBytes(t, "{{bp1}}")

	_, err := b.Build(context.Background(), []byte("not a zip"), 7)
	assert.ErrorIs(t, err, docx.ErrNotDocx)

	_, err = b.Build(context.Background(), template, 99)
	assert.ErrorIs(t, err, errNoForm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Build(ctx, template, 7)
	assert.ErrorIs(t, err, context.Canceled)
}
