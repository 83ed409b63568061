package dsl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrMalformedMarkup reports input that cannot be turned into a markup tree.
var ErrMalformedMarkup = errors.New("malformed markup")

// Parse reads report markup from r and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	// 报表文件常见 latin-1 / iso-8859-* 声明，统一转成 UTF-8 再解析。
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := newNode(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformedMarkup)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fmt.Errorf("%w: text outside the root element", ErrMalformedMarkup)
				}
				continue
			}
			appendCharData(stack[len(stack)-1], string(t))
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedMarkup)
	}
	return root, nil
}

// ParseString parses report markup held in a string.
func ParseString(input string) (*Node, error) {
	return Parse(strings.NewReader(input))
}

func newNode(start xml.StartElement) *Node {
	n := &Node{Tag: start.Name.Local}
	if len(start.Attr) > 0 {
		n.Attrs = make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			n.Attrs[a.Name.Local] = a.Value
		}
	}
	return n
}

// appendCharData places text either before the first child of parent or
// after its most recent child.
func appendCharData(parent *Node, text string) {
	if len(parent.Children) == 0 {
		parent.Text += text
		return
	}
	last := parent.Children[len(parent.Children)-1]
	last.Tail += text
}
