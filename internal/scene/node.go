// Package scene holds the retained scene graph the render pipeline draws into.
// Every node carries a stable key (entity name + role) so successive frames can
// be diffed instead of torn down, and so geometry lookups never go through
// string-templated class names.
package scene

import (
	"sort"
	"strconv"
)

// Node is one element of the scene graph.
type Node struct {
	Key      string
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// NewNode creates a node with the given key and SVG tag.
func NewNode(key, tag string) *Node {
	return &Node{
		Key:   key,
		Tag:   tag,
		Attrs: make(map[string]string),
	}
}

// Group creates a container node.
func Group(key string) *Node {
	return NewNode(key, "g")
}

// Path creates a path node with its geometry attribute.
func Path(key, d string) *Node {
	n := NewNode(key, "path")
	n.Attrs["d"] = d
	return n
}

// Rect creates a rectangle node.
func Rect(key string, x, y, w, h float64) *Node {
	n := NewNode(key, "rect")
	n.Attrs["x"] = Ftoa(x)
	n.Attrs["y"] = Ftoa(y)
	n.Attrs["width"] = Ftoa(w)
	n.Attrs["height"] = Ftoa(h)
	return n
}

// Circle creates a circle node.
func Circle(key string, cx, cy, r float64) *Node {
	n := NewNode(key, "circle")
	n.Attrs["cx"] = Ftoa(cx)
	n.Attrs["cy"] = Ftoa(cy)
	n.Attrs["r"] = Ftoa(r)
	return n
}

// Line creates a line node.
func Line(key string, x1, y1, x2, y2 float64) *Node {
	n := NewNode(key, "line")
	n.Attrs["x1"] = Ftoa(x1)
	n.Attrs["y1"] = Ftoa(y1)
	n.Attrs["x2"] = Ftoa(x2)
	n.Attrs["y2"] = Ftoa(y2)
	return n
}

// Text creates a text node.
func Text(key string, x, y float64, content string) *Node {
	n := NewNode(key, "text")
	n.Attrs["x"] = Ftoa(x)
	n.Attrs["y"] = Ftoa(y)
	n.Text = content
	return n
}

// Set sets an attribute and returns the node for chaining.
func (n *Node) Set(name, value string) *Node {
	n.Attrs[name] = value
	return n
}

// SetFloat sets a numeric attribute.
func (n *Node) SetFloat(name string, value float64) *Node {
	n.Attrs[name] = Ftoa(value)
	return n
}

// Append adds children and returns the node for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Clone returns a deep copy of the subtree. Frames retained for diffing are
// cloned so later in-place reprojection cannot rewrite them.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Key:   n.Key,
		Tag:   n.Tag,
		Text:  n.Text,
		Attrs: make(map[string]string, len(n.Attrs)),
	}
	for name, value := range n.Attrs {
		cp.Attrs[name] = value
	}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return cp
}

// Find returns the first descendant (or the node itself) with the given key,
// or nil when no such node exists.
func (n *Node) Find(key string) *Node {
	if n.Key == key {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(key); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the total number of nodes in the subtree, the node included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// CountTag returns how many nodes in the subtree carry the given tag.
func (n *Node) CountTag(tag string) int {
	total := 0
	if n.Tag == tag {
		total = 1
	}
	for _, c := range n.Children {
		total += c.CountTag(tag)
	}
	return total
}

// Walk visits every node in the subtree depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// sortedAttrNames returns attribute names in stable order so serialized frames
// are byte-comparable across renders.
func (n *Node) sortedAttrNames() []string {
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ftoa formats a pixel coordinate with enough precision for stable output.
func Ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
