package htmldocx

import (
	"errors"
	"fmt"
)

var (
	// ErrColor reports a color value that is not a 3 or 6 digit hex color.
	ErrColor = errors.New("invalid color")
	// ErrWidth reports a column width that is not a number or percentage.
	ErrWidth = errors.New("invalid column width")
)

// RenderError reports a placeholder whose markup could not be rendered or inserted.
// Substitutions made before the failing one stay in the document.
type RenderError struct {
	Placeholder string
	Index       int
	Cause       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error for placeholder '%s' at block %d: %v", e.Placeholder, e.Index, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
