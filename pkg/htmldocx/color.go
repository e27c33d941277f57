package htmldocx

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/benjaminschreck/go-scorecard/pkg/palette"
)

// hexColor converts a CSS hex color ("#b0e396", "b0e396", "#fff") into the six
// upper-case digits WordprocessingML expects.
func hexColor(v string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(digits) != 3 && len(digits) != 6 {
		return "", fmt.Errorf("%w: %q", ErrColor, v)
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrColor, v)
	}
	return strings.ToUpper(strings.TrimPrefix(c.Hex(), "#")), nil
}

// borderColor picks the first hash color out of a table's border shorthand
// ("1px solid #c1c6cc"). Tables without one get palette.DefaultBorder.
func borderColor(table StyleMap) string {
	v, ok := table["border"]
	if !ok {
		return palette.DefaultBorder
	}
	l := css.NewLexer(parse.NewInputString(v))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return palette.DefaultBorder
		case css.HashToken:
			if c, err := hexColor(string(data)); err == nil {
				return c
			}
			return palette.DefaultBorder
		}
	}
}
