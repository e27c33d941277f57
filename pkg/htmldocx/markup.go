package htmldocx

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind classifies a markup node. Every tag outside the supported subset is KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindTable
	KindColGroup
	KindCol
	KindRow
	KindCell
	KindParagraph
	KindBold
	KindItalic
	KindBreak
	KindList
	KindListItem
)

var kindNames = [...]string{"other", "text", "table", "colgroup", "col", "row", "cell",
	"paragraph", "bold", "italic", "break", "list", "listitem"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func kindOf(a atom.Atom) Kind {
	switch a {
	case atom.Table:
		return KindTable
	case atom.Colgroup:
		return KindColGroup
	case atom.Col:
		return KindCol
	case atom.Tr:
		return KindRow
	case atom.Td, atom.Th:
		return KindCell
	case atom.P:
		return KindParagraph
	case atom.B, atom.Strong:
		return KindBold
	case atom.I, atom.Em:
		return KindItalic
	case atom.Br:
		return KindBreak
	case atom.Ul:
		return KindList
	case atom.Li:
		return KindListItem
	default:
		return KindOther
	}
}

// Node is one element or text node of parsed markup.
type Node struct {
	Kind Kind
	// Tag is the lower-case element name; empty for text
	Tag string
	// Text holds the content of text nodes
	Text     string
	Style    StyleMap
	Width    string
	Children []*Node
}

// Parse reads markup with the HTML5 parsing rules of a <body> context and returns
// the top-level nodes. Comments and doctypes are dropped.
func Parse(markup string) ([]*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	nodes := make([]*Node, 0, len(parsed))
	for _, n := range parsed {
		if c := convert(n); c != nil {
			nodes = append(nodes, c)
		}
	}
	return nodes, nil
}

func convert(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return &Node{Kind: KindText, Text: n.Data}
	case html.ElementNode:
	default:
		return nil
	}

	node := &Node{Kind: kindOf(n.DataAtom), Tag: n.Data}
	for _, a := range n.Attr {
		switch a.Key {
		case "style":
			node.Style = ParseStyle(a.Val)
		case "width":
			node.Width = a.Val
		}
	}
	if node.Style == nil {
		node.Style = StyleMap{}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

// Flatten returns the concatenated text of the node and all its descendants.
func (n *Node) Flatten() string {
	if n.Kind == KindText {
		return n.Text
	}
	var sb strings.Builder
	n.flatten(&sb)
	return sb.String()
}

func (n *Node) flatten(sb *strings.Builder) {
	for _, c := range n.Children {
		if c.Kind == KindText {
			sb.WriteString(c.Text)
			continue
		}
		c.flatten(sb)
	}
}

// FindAll returns the descendants of n with one of the given kinds, in document
// order. Matches are searched inside matches too.
func (n *Node) FindAll(kinds ...Kind) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.Children {
			for _, k := range kinds {
				if c.Kind == k {
					out = append(out, c)
					break
				}
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Find returns the first descendant of the given kind, or nil.
func (n *Node) Find(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}
