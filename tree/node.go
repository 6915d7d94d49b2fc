// Package tree holds the parsed form of one server response: a tag, a flat
// attribute map, and ordered child nodes. Trees are immutable once parsed;
// a new response always produces a new tree. The object layer relies on node
// pointer identity to decide whether derived caches must be invalidated.
package tree

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/teranos/mediagraph/errors"
)

// Node is one element of a server response.
type Node struct {
	Tag      string
	Attr     map[string]string
	Children []*Node
}

// Parse decodes an XML document into a Node tree.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse response document")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Tag:  t.Name.Local,
				Attr: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				node.Attr[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if root == nil {
		return nil, errors.New("response document has no root element")
	}
	return root, nil
}

// ParseString decodes an XML string into a Node tree.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// Get returns the named attribute, matched case-insensitively.
// The first match wins; exactly one match is expected.
func (n *Node) Get(name string) (string, bool) {
	if v, ok := n.Attr[name]; ok {
		return v, true
	}
	for k, v := range n.Attr {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// ChildrenByTag returns the direct children whose tag matches,
// case-insensitively.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if strings.EqualFold(c.Tag, tag) {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first direct child, or nil for a leaf node.
// Detail responses wrap the single item under an envelope root.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// BFS returns the nearest descendant (including n itself) whose tag matches,
// searching breadth-first. Returns nil when no descendant matches.
func (n *Node) BFS(tag string) *Node {
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if strings.EqualFold(cur.Tag, tag) {
			return cur
		}
		queue = append(queue, cur.Children...)
	}
	return nil
}
