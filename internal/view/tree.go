// Package view links flat view records into one tree per layout and
// indexes which view ids the generated source needs to look up.
package view

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/section"
)

var errUnmapped = errors.New("component tag has no mapping entry")

// Node is one view in a layout tree.
type Node struct {
	ID        string
	Component Component
	Attrs     []records.Attr
	Line      int
	Parent    *Node
	Children  []*Node
}

// Attr returns the attribute with the given key.
func (n *Node) Attr(key string) (records.Value, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return records.Value{}, false
}

// Tree is the view hierarchy of one layout.
type Tree struct {
	Layout string
	Root   *Node
	nodes  []*Node
}

// Nodes returns every node in source order.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id string) *Node {
	for _, n := range t.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Build links every xml layout section into a Tree keyed by layout name.
// Floating-action-button sections are skipped.
func Build(sections []records.ViewSection) (map[string]*Tree, error) {
	trees := make(map[string]*Tree)
	for _, s := range sections {
		if s.Ext != records.ExtLayout {
			continue
		}
		if _, dup := trees[s.Layout]; dup {
			return nil, treeError(s.Layout, "", s.Line, "layout declared more than once")
		}
		t, err := buildTree(s)
		if err != nil {
			return nil, err
		}
		trees[s.Layout] = t
	}
	return trees, nil
}

func buildTree(s records.ViewSection) (*Tree, error) {
	t := &Tree{Layout: s.Layout}
	byID := make(map[string]*Node, len(s.Records))
	for _, r := range s.Records {
		if _, dup := byID[r.ID]; dup {
			return nil, treeError(s.Layout, r.ID, r.Line, "duplicate view id")
		}
		c, err := LookupComponent(r.Type, s.Layout)
		if err != nil {
			var de *decodeerr.Error
			if errors.As(err, &de) {
				de.Line = r.Line
			}
			return nil, err
		}
		n := &Node{ID: r.ID, Component: c, Attrs: r.Attrs, Line: r.Line}
		byID[r.ID] = n
		t.nodes = append(t.nodes, n)
	}

	for i, r := range s.Records {
		n := t.nodes[i]
		if r.Parent == "" {
			if t.Root != nil {
				return nil, treeError(s.Layout, r.ID, r.Line, "second root (first is %q)", t.Root.ID)
			}
			t.Root = n
			continue
		}
		p, ok := byID[r.Parent]
		if !ok {
			return nil, treeError(s.Layout, r.ID, r.Line, "parent %q does not exist", r.Parent)
		}
		if p.Component.Container == Leaf {
			return nil, treeError(s.Layout, r.ID, r.Line, "parent %q is a %s and cannot hold children", p.ID, p.Component.Widget)
		}
		n.Parent = p
		p.Children = append(p.Children, n)
	}
	if t.Root == nil {
		return nil, treeError(s.Layout, "", s.Line, "no root view")
	}

	reached := 0
	Walk(t.Root, func(*Node) { reached++ })
	if reached != len(t.nodes) {
		for _, n := range t.nodes {
			if !reachable(n, t.Root) {
				return nil, treeError(s.Layout, n.ID, n.Line, "parent chain does not reach the root")
			}
		}
	}
	return t, nil
}

// Walk visits n and its descendants depth first in source order.
func Walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// reachable follows parent links from n until the root or a repeat.
func reachable(n, root *Node) bool {
	seen := make(map[*Node]bool)
	for n != nil && !seen[n] {
		if n == root {
			return true
		}
		seen[n] = true
		n = n.Parent
	}
	return false
}

func treeError(layout, id string, line int, format string, args ...any) error {
	return &decodeerr.Error{
		Kind:    decodeerr.KindMalformedViewTree,
		Section: section.View,
		Screen:  layout,
		Tag:     id,
		Line:    line,
		Err:     fmt.Errorf(format, args...),
	}
}
