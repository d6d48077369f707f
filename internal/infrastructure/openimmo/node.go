// Package openimmo decodes OpenImmo transfer documents into a navigable
// element tree and resolves mapping selectors against it.
package openimmo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Attr is one XML attribute, order preserved as in the document.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the decoded feed document.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Parse decodes an XML document into an element tree. Non-UTF-8 feeds are
// decoded through the charset declared in the XML prolog. A malformed
// document is an error, never a partial tree.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var root *Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			node, err := decodeElement(dec, start)
			if err != nil {
				return nil, err
			}
			if root != nil {
				return nil, fmt.Errorf("malformed document: multiple root elements")
			}
			root = node
		}
	}
	if root == nil {
		return nil, fmt.Errorf("malformed document: no root element")
	}
	return root, nil
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	node := &Node{Name: start.Name.Local}
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			node.Text = text.String()
			return node, nil
		}
	}
}

// Attr returns the value of the named attribute
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns all descendants matching the '/'-separated element path,
// relative to n. An empty path matches n itself. Matching is per segment
// against direct children, in document order.
func (n *Node) Find(path string) []*Node {
	if path == "" {
		return []*Node{n}
	}
	current := []*Node{n}
	for _, seg := range strings.Split(path, "/") {
		var next []*Node
		for _, node := range current {
			for _, child := range node.Children {
				if child.Name == seg {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// First returns the first node matching the path, or nil
func (n *Node) First(path string) *Node {
	nodes := n.Find(path)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// ChildText returns the trimmed text of the first child matching the path
func (n *Node) ChildText(path string) string {
	if node := n.First(path); node != nil {
		return strings.TrimSpace(node.Text)
	}
	return ""
}
