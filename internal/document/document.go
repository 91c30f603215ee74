package document

import (
	"bytes"
	"fmt"
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// Node is one element of a parsed filing document. The HTML parser lowercases
// tag and attribute names, so Tag is always lowercase and attribute lookups
// go through Attr, which folds case on the caller's side too.
type Node struct {
	Tag      string
	Attrs    []Attribute
	Parent   *Node
	Children []*Node

	// text holds the node's direct text pieces in document order.
	text []string
}

// Attribute is a single name/value pair, preserved in document order.
type Attribute struct {
	Key   string
	Value string
}

// Tree is the immutable ownership root for a parsed document. Validators
// only ever read it.
type Tree struct {
	Root *Node
}

// Parse turns raw markup into a Tree. A document with no markup at all, or
// one the parser cannot produce a root element for, is a fatal condition:
// the caller must not run any validation pass without a tree.
func Parse(raw string) (*Tree, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("document is empty")
	}
	if !containsTag(trimmed) {
		return nil, fmt.Errorf("document contains no markup elements")
	}
	node, err := html.Parse(bytes.NewReader([]byte(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	root := convert(node, nil)
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return &Tree{Root: root}, nil
}

// containsTag reports whether the input has at least one start tag, so plain
// prose is rejected before the lenient HTML parser wraps it in a synthetic
// document.
func containsTag(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		c := s[i+1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

// convert maps the html.Node tree onto our Node tree, keeping only element
// and text content. The first element node found becomes the root.
func convert(n *html.Node, parent *Node) *Node {
	if n.Type == html.ElementNode {
		node := &Node{Tag: strings.ToLower(n.Data), Parent: parent}
		for _, a := range n.Attr {
			node.Attrs = append(node.Attrs, Attribute{Key: strings.ToLower(a.Key), Value: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if t := strings.TrimSpace(c.Data); t != "" {
					node.text = append(node.text, t)
				}
			case html.ElementNode:
				if child := convert(c, node); child != nil {
					node.Children = append(node.Children, child)
				}
			}
		}
		return node
	}
	// Document node: descend to the first element.
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := convert(c, parent); el != nil {
			return el
		}
	}
	return nil
}

// Attr returns the value of the named attribute, folding case.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, regardless of value.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// LocalName returns the tag name with any namespace prefix stripped, so
// "xbrli:context" matches as "context".
func (n *Node) LocalName() string {
	if i := strings.IndexByte(n.Tag, ':'); i >= 0 {
		return n.Tag[i+1:]
	}
	return n.Tag
}

// Is reports whether the node's local tag name equals local, folding case.
func (n *Node) Is(local string) bool {
	return strings.EqualFold(n.LocalName(), local)
}

// Text returns all descendant text of the node in document order with
// whitespace runs collapsed to single spaces.
func (n *Node) Text() string {
	var b strings.Builder
	n.collectText(&b)
	return collapseSpaces(strings.TrimSpace(b.String()))
}

// OwnText returns only the node's direct text content, excluding text that
// belongs to child elements. Anomaly scanning uses this so a container never
// re-reports text already attributed to a nested element.
func (n *Node) OwnText() string {
	return collapseSpaces(strings.TrimSpace(strings.Join(n.text, " ")))
}

func (n *Node) collectText(b *strings.Builder) {
	for _, t := range n.text {
		b.WriteString(t)
		b.WriteString(" ")
	}
	for _, c := range n.Children {
		c.collectText(b)
	}
}

// Path returns a slash-joined ancestry of local tag names, used as the
// location field on diagnostics.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.LocalName())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// All yields every node of the tree depth-first, root included.
func (t *Tree) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if t.Root != nil {
			walk(t.Root, yield)
		}
	}
}

// Find yields, lazily, every node matching the predicate.
func (t *Tree) Find(pred func(*Node) bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range t.All() {
			if pred(n) {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// FindFirst returns the first node matching the predicate, or nil.
func (t *Tree) FindFirst(pred func(*Node) bool) *Node {
	for n := range t.Find(pred) {
		return n
	}
	return nil
}

// ByLocalName yields every element whose local tag name equals local.
func (t *Tree) ByLocalName(local string) iter.Seq[*Node] {
	return t.Find(func(n *Node) bool { return n.Is(local) })
}

// ByAttr yields every element whose named attribute equals value exactly.
func (t *Tree) ByAttr(key, value string) iter.Seq[*Node] {
	return t.Find(func(n *Node) bool {
		v, ok := n.Attr(key)
		return ok && v == value
	})
}

func walk(n *Node, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// FirstChild returns the first direct child with the given local name, or nil.
func (n *Node) FirstChild(local string) *Node {
	for _, c := range n.Children {
		if c.Is(local) {
			return c
		}
	}
	return nil
}

// Descendant returns the first descendant (depth-first) with the given local
// name, or nil.
func (n *Node) Descendant(local string) *Node {
	for _, c := range n.Children {
		if c.Is(local) {
			return c
		}
		if d := c.Descendant(local); d != nil {
			return d
		}
	}
	return nil
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
