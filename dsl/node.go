package dsl

import "strings"

// Node is one element of a parsed report-markup document.
//
// Text holds the character data between the start tag and the first child;
// Tail holds the character data after the end tag, up to the next sibling
// (it belongs to the parent's flow). A Node with an empty Tag is a root
// without a tag.
type Node struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Tail     string            `json:"tail,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Attr looks up an attribute by local name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// Get returns the attribute value or "" when absent.
func (n *Node) Get(name string) string {
	v, _ := n.Attr(name)
	return v
}

// ChildrenByTag returns the direct children carrying tag, in document order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first direct child carrying tag, or nil.
func (n *Node) First(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// TextContent concatenates all character data inside the node (its own text,
// then every descendant's text and tail), excluding the node's own tail.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		c.writeText(sb)
		sb.WriteString(c.Tail)
	}
}
