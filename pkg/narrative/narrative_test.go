package narrative

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	var n Narrator = Static("fixed")
	text, err := n.Describe(context.Background(), []Count{{Failure: "x", Count: 1}})
	require.NoError(t, err)
	assert.Equal(t, "fixed", text)
}

func TestPrompt(t *testing.T) {
	p := Prompt([]Count{{Failure: "Low RSSI", Count: 5}, {Failure: "Co-channel", Count: 2}})
	assert.Contains(t, p, "- Low RSSI: 5\n- Co-channel: 2\n")
	assert.Contains(t, p, "Keep response under 100 words")
}

func TestParagraph(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Coverage is weak.", want: "<p>Coverage is weak.</p>"},
		{name: "markup stripped", in: "<b>Bold</b> <script>alert(1)</script>claim", want: "<p>Bold claim</p>"},
		{name: "escaped", in: "RSSI < -67 & SNR", want: "<p>RSSI &lt; -67 &amp; SNR</p>"},
		{name: "empty", in: "  ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paragraph(tt.in))
		})
	}
}

func TestNewGenAIRequiresKey(t *testing.T) {
	_, err := NewGenAI(context.Background(), "", "", nil)
	assert.Error(t, err)
}
