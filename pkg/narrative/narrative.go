// Package narrative writes the technical analysis paragraph of a remediation report.
package narrative

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Count is the number of findings sharing one failure type.
type Count struct {
	Failure string
	Count   int
}

// Narrator describes a findings summary in prose.
type Narrator interface {
	Describe(ctx context.Context, summary []Count) (string, error)
}

// Static is a Narrator returning fixed text.
type Static string

// Describe returns s.
func (s Static) Describe(context.Context, []Count) (string, error) {
	return string(s), nil
}

// Prompt is the request sent for a summary.
func Prompt(summary []Count) string {
	var sb strings.Builder
	sb.WriteString("Analyze these network findings and identify technical patterns:\n")
	for _, c := range summary {
		fmt.Fprintf(&sb, "- %s: %d\n", c.Failure, c.Count)
	}
	sb.WriteString(`
Provide a short technical analysis focusing on:
1. Most common issue types
2. Potential root causes
3. One specific recommendation for system improvement

Keep response under 100 words, use technical language.`)
	return sb.String()
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Paragraph turns generated text into paragraph markup. All markup in text is
// stripped; an empty result yields no markup.
func Paragraph(text string) string {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	cleaned := strings.TrimSpace(policy.Sanitize(text))
	if cleaned == "" {
		return ""
	}
	return "<p>" + cleaned + "</p>"
}
