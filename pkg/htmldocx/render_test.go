package htmldocx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

func TestRenderParagraph(t *testing.T) {
	nodes, err := Parse(`<p style="color:#718096; font-style:italic">plain <b>bold</b> <i>it</i></p>`)
	require.NoError(t, err)

	p, err := RenderParagraph(nodes[0])
	require.NoError(t, err)
	require.Len(t, p.Runs, 4)
	assert.Equal(t, "plain bold it", p.GetText())
	assert.NotNil(t, p.Runs[1].Properties.Bold)
	assert.Nil(t, p.Runs[0].Properties.Bold)
	for i := range p.Runs {
		assert.Equal(t, &wml.Color{Val: "718096"}, p.Runs[i].Properties.Color, "run %d", i)
		assert.NotNil(t, p.Runs[i].Properties.Italic, "run %d", i)
	}
}

func TestRenderParagraphKeepsEmphasisSpacing(t *testing.T) {
	nodes, err := Parse(`<p><strong> Score: </strong><em>high</em></p>`)
	require.NoError(t, err)

	p, err := RenderParagraph(nodes[0])
	require.NoError(t, err)
	require.Len(t, p.Runs, 2)
	assert.Equal(t, " Score: ", p.Runs[0].Text)
	assert.NotNil(t, p.Runs[0].Properties.Bold)
	assert.NotNil(t, p.Runs[1].Properties.Italic)
	assert.Nil(t, p.Runs[1].Properties.Color)
}

func TestRenderParagraphFlattensOtherChildren(t *testing.T) {
	nodes, err := Parse(`<p>a <span>b <b>c</b></span><br></p>`)
	require.NoError(t, err)

	p, err := RenderParagraph(nodes[0])
	require.NoError(t, err)
	require.Len(t, p.Runs, 2)
	assert.Equal(t, "a ", p.Runs[0].Text)
	assert.Equal(t, "b c", p.Runs[1].Text)
	assert.Nil(t, p.Runs[1].Properties)
}

func TestRenderParagraphInvalidColor(t *testing.T) {
	nodes, err := Parse(`<p style="color:gray">x</p>`)
	require.NoError(t, err)

	_, err = RenderParagraph(nodes[0])
	assert.ErrorIs(t, err, ErrColor)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{name: "empty", markup: "", want: nil},
		{name: "bare text", markup: "just text", want: nil},
		{name: "paragraph", markup: "<p>hello</p>", want: []string{"p:hello"}},
		{
			name:   "table then paragraph",
			markup: "<table><tr><td>a</td></tr></table><p>after</p>",
			want:   []string{"tbl", "p:after"},
		},
		{name: "nested blocks are ignored", markup: "<div><p>inner</p></div>", want: nil},
		{name: "empty table", markup: "<table></table><p>x</p>", want: []string{"p:x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems, err := Render(tt.markup)
			require.NoError(t, err)

			var got []string
			for _, el := range elems {
				switch el := el.(type) {
				case *wml.Paragraph:
					got = append(got, "p:"+el.GetText())
				case *wml.Table:
					got = append(got, "tbl")
				default:
					t.Fatalf("unexpected element %T", el)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderError(t *testing.T) {
	_, err := Render(`<p>ok</p><table><tr><td style="color:#zzz">x</td></tr></table>`)
	assert.ErrorIs(t, err, ErrColor)
}
