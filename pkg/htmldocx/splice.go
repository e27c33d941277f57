package htmldocx

import (
	"sort"
	"strings"

	wml "github.com/benjaminschreck/go-scorecard/pkg/docx/xml"
)

// Replacement pairs a placeholder name with the markup that replaces it.
type Replacement struct {
	Name   string
	Markup string
}

// Token returns the placeholder token for name, e.g. "{{bp1}}".
func Token(name string) string {
	return "{{" + name + "}}"
}

// FromMap builds replacements from a map, ordered by name.
func FromMap(m map[string]string) []Replacement {
	reps := make([]Replacement, 0, len(m))
	for name, markup := range m {
		reps = append(reps, Replacement{Name: name, Markup: markup})
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i].Name < reps[j].Name })
	return reps
}

// Body is the ordered block list of a document, edited by index.
type Body interface {
	Len() int
	ParagraphText(i int) (string, bool)
	Insert(i int, elems ...wml.BodyElement) error
	Remove(i int) error
}

// Splice replaces placeholder paragraphs with rendered markup. Each paragraph present
// when the pass starts is checked once; the first replacement whose token occurs in
// its text is rendered, inserted where the paragraph was, followed by a blank
// paragraph when a table was inserted, and the paragraph is removed. Content inserted
// by the pass is not scanned again.
//
// The first failure stops the pass. Substitutions made before it are kept.
func Splice(body Body, reps []Replacement) error {
	return splice(body, reps, nil)
}

type spliceFunc func(name string, at, inserted int)

func splice(body Body, reps []Replacement, onSplice spliceFunc) error {
	i := 0
	for left := body.Len(); left > 0; left-- {
		text, ok := body.ParagraphText(i)
		if !ok {
			i++
			continue
		}
		rep, ok := match(text, reps)
		if !ok {
			i++
			continue
		}

		elems, err := Render(rep.Markup)
		if err != nil {
			return &RenderError{Placeholder: rep.Name, Index: i, Cause: err}
		}
		if hasTable(elems) {
			elems = append(elems, &wml.Paragraph{})
		}
		if err := body.Insert(i, elems...); err != nil {
			return &RenderError{Placeholder: rep.Name, Index: i, Cause: err}
		}
		if err := body.Remove(i + len(elems)); err != nil {
			return &RenderError{Placeholder: rep.Name, Index: i, Cause: err}
		}
		if onSplice != nil {
			onSplice(rep.Name, i, len(elems))
		}
		i += len(elems)
	}
	return nil
}

func match(text string, reps []Replacement) (Replacement, bool) {
	for _, rep := range reps {
		if strings.Contains(text, Token(rep.Name)) {
			return rep, true
		}
	}
	return Replacement{}, false
}

func hasTable(elems []wml.BodyElement) bool {
	for _, el := range elems {
		if _, ok := el.(*wml.Table); ok {
			return true
		}
	}
	return false
}
