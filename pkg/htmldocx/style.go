package htmldocx

import "strings"

// StyleMap maps lower-case CSS property names to their trimmed values.
type StyleMap map[string]string

// ParseStyle reads an inline style declaration such as "color:#fff; text-align:center".
// Fragments without a ':' or with an empty property name are skipped.
func ParseStyle(s string) StyleMap {
	styles := StyleMap{}
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		styles[prop] = strings.TrimSpace(val)
	}
	return styles
}

// Has reports whether any of the properties is declared.
func (m StyleMap) Has(props ...string) bool {
	for _, p := range props {
		if _, ok := m[p]; ok {
			return true
		}
	}
	return false
}
